package validators

import "go.mongodb.org/mongo-driver/bson"

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"type",
			"message",
			"date",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"type": bson.M{
				"bsonType": "string",
			},

			"message": bson.M{
				"bsonType": "string",
			},

			"bookingId": bson.M{
				"bsonType": "objectId",
			},

			"roomId": bson.M{
				"bsonType": "objectId",
			},

			"eventId": bson.M{
				"bsonType": "string",
			},

			"date": bson.M{
				"bsonType": "date",
			},
		},
	},
}
