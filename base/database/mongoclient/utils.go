package mongoclient

import (
	"errors"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
)

var (
	ErrNotStruct = errors.New("not a struct")

	timeType = reflect.TypeOf(time.Time{})
)

// MakeBsonM turns the non-zero fields of a struct into a selector or updater.
// Pointers are dereferenced, nested structs become dotted keys.
func MakeBsonM(patchable interface{}) (bson.M, error) {
	val := reflect.Indirect(reflect.ValueOf(patchable))
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	bsonM := bson.M{}
	if err := makeBsonM(bsonM, "", val); err != nil {
		return nil, err
	}
	return bsonM, nil
}

func makeBsonM(bsonM bson.M, prefix string, val reflect.Value) error {
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		tag, err := bsoncodec.DefaultStructTagParser(val.Type().Field(i))
		if err != nil {
			return err
		}
		if tag.Skip || !field.CanInterface() || field.IsZero() {
			continue
		}

		key := prefix + tag.Name
		if field.Kind() == reflect.Ptr {
			field = field.Elem()
		}
		if field.Kind() == reflect.Struct && field.Type() != timeType {
			if err := makeBsonM(bsonM, key+".", field); err != nil {
				return err
			}
			continue
		}
		bsonM[key] = field.Interface()
	}
	return nil
}
