package validators

import (
	"reflect"
	"strings"

	"rfqengine/cmd/internal/domain/entity"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

// Register wires every custom tag and type used by the request contracts.
func Register(validate *validator.Validate) {
	validate.RegisterTagNameFunc(JSONFieldName)
	validate.RegisterCustomTypeFunc(DecimalValue, decimal.Decimal{})

	_ = validate.RegisterValidation("nodupes", NoDupes)
	_ = validate.RegisterValidation("leadstage", LeadStage)
	_ = validate.RegisterValidation("district", District)
}

// JSONFieldName reports fields by their JSON name so errors match the payload.
func JSONFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// DecimalValue lets numeric tags such as gte=0 apply to decimal amounts.
func DecimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}

func LeadStage(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return entity.LeadStage(field.String()).Valid()
}

func District(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return entity.District(field.String()).Known()
}
