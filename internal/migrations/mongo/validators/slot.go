package validators

import "go.mongodb.org/mongo-driver/bson"

var SlotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"slot_id",
			"node_id",
			"occupied",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"slot_id": bson.M{
				"bsonType": "int",
				"minimum":  1,
			},

			"node_id": bson.M{
				"bsonType": "int",
				"minimum":  0,
			},

			"occupied": bson.M{
				"bsonType": "bool",
			},

			"plate": bson.M{
				"bsonType":  "string",
				"maxLength": 12,
			},
		},
	},
}
