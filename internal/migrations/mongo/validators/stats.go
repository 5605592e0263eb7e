package validators

import "go.mongodb.org/mongo-driver/bson"

var StatsValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"revenue",
			"total_parked",
			"total_exited",
			"total_wait_seconds",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"revenue": bson.M{
				"bsonType": "double",
				"minimum":  0,
			},

			"total_parked": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"total_exited": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"total_wait_seconds": bson.M{
				"bsonType": "double",
				"minimum":  0,
			},
		},
	},
}
