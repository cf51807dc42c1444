package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"roomNumber",
			"type",
			"status",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"roomNumber": bson.M{
				"bsonType": "number",
				"minimum":  1,
			},

			"type": bson.M{
				"bsonType": "objectId",
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"available",
					"occupied",
					"cleaning",
					"maintenance",
				},
			},
		},
	},
}
