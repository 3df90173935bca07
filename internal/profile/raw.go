package profile

import (
	"reflect"
	"strings"
)

// Canonical field names. They double as mapstructure keys for Raw.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldGender        = "gender"
	FieldBirthDate     = "birth_date"
	FieldAge           = "age"
	FieldHeight        = "height"
	FieldMaritalStatus = "marital_status"
	FieldDenomination  = "denomination"
	FieldEducation     = "education"
	FieldSalary        = "salary"
	FieldCity          = "city"
	FieldOccupation    = "occupation"
	FieldCaste         = "caste"
	FieldJoined        = "joined"
	FieldExpireDate    = "expire_date"
	FieldMobile        = "mobile"
)

// Raw is one source row as delivered by the record source, keyed by canonical field names.
// Values keep whatever type the source produced.
type Raw struct {
	ID            string `mapstructure:"id"`
	Name          string `mapstructure:"name"`
	Gender        any    `mapstructure:"gender"`
	BirthDate     any    `mapstructure:"birth_date"`
	Age           any    `mapstructure:"age"`
	Height        any    `mapstructure:"height"`
	MaritalStatus any    `mapstructure:"marital_status"`
	Denomination  any    `mapstructure:"denomination"`
	Education     any    `mapstructure:"education"`
	Salary        any    `mapstructure:"salary"`
	City          any    `mapstructure:"city"`
	Occupation    any    `mapstructure:"occupation"`
	Caste         any    `mapstructure:"caste"`
	Joined        any    `mapstructure:"joined"`
	ExpireDate    any    `mapstructure:"expire_date"`
	Mobile        any    `mapstructure:"mobile"`
}

// Fields returns the canonical field names of Raw in declaration order.
func Fields() []string {
	fields := reflect.VisibleFields(reflect.TypeOf(Raw{}))
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		// mapstructure tags may carry options after a comma.
		name, _, _ := strings.Cut(field.Tag.Get("mapstructure"), ",")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		names = append(names, name)
	}
	return names
}
