package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"password",
			"role",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 254,
			},

			"password": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"role": bson.M{
				"bsonType": "string",
				"enum":     []string{"staff", "admin"},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
