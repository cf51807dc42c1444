package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customerName",
			"customerPhone",
			"room",
			"checkIn",
			"checkOut",
			"guests",
			"status",
			"paymentStatus",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"customerName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"customerPhone": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 50,
			},

			"room": bson.M{
				"bsonType": "objectId",
			},

			"checkIn": bson.M{
				"bsonType": "date",
			},

			"checkOut": bson.M{
				"bsonType": "date",
			},

			"guests": bson.M{
				"bsonType": "number",
				"minimum":  1,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"booked",
					"checked-in",
					"checked-out",
					"cancelled",
				},
			},

			"paymentStatus": bson.M{
				"bsonType": "string",
				"enum":     []string{"pending", "paid"},
			},

			"paymentMethod": bson.M{
				"bsonType": []string{"string", "null"},
			},

			"paidAmount": bson.M{
				"bsonType": "number",
				"minimum":  0,
			},

			"paymentDate": bson.M{
				"bsonType": []string{"date", "null"},
			},
		},
	},
}
