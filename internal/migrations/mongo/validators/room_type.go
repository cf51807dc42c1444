package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomTypeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"price",
			"maxGuests",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"price": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"maxGuests": bson.M{
				"bsonType": "number",
				"minimum":  1,
				"maximum":  50,
			},

			"features": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "string",
				},
			},
		},
	},
}
