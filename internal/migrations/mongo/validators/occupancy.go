package validators

import "go.mongodb.org/mongo-driver/bson"

var OccupancyValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"plate",
			"slot_id",
			"entry_time",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"plate": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 12,
			},

			"slot_id": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"entry_time": bson.M{
				"bsonType": "date",
			},

			"exit_time": bson.M{
				"bsonType": []string{"date", "null"},
			},

			"charge": bson.M{
				"bsonType": []string{"double", "null"},
				"minimum":  0,
			},

			"rate_per_minute": bson.M{
				"bsonType": []string{"double", "null"},
				"minimum":  0,
			},
		},
	},
}
