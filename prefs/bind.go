package prefs

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ValidationErrors represents a map of field names to their validation error messages.
// Each field can have multiple validation errors.
type ValidationErrors map[string][]string

// Error implements the error interface by joining all messages.
func (e ValidationErrors) Error() string {
	var parts []string
	for field, messages := range e {
		for _, message := range messages {
			parts = append(parts, field+": "+message)
		}
	}
	return strings.Join(parts, "; ")
}

// Bind decodes preference values from a store onto a struct using `pref`
// tags, with optional defaults and declarative validation.
//
// Supported field types are string, bool, int and float64. Boolean fields
// require the strict literals "true"/"false". Validation rules:
//   - required       the key must be present with a non-empty value
//   - min=N, max=N   numeric bounds, or length bounds for strings
//   - oneof=a b c    the value must equal one of the listed options
//
// Example:
//
//	type EditorPrefs struct {
//	    FontSize  int    `pref:"editor.fontSize" default:"12" validate:"min=6,max=72"`
//	    WrapLines bool   `pref:"editor.wrapLines" default:"false"`
//	    Theme     string `pref:"editor.theme" validate:"oneof=light dark"`
//	}
//
//	var p EditorPrefs
//	if errs := prefs.Bind(store, &p); errs != nil {
//	    // handle validation errors
//	}
//
// Bind returns nil when every field decoded and validated cleanly.
func Bind(store Store, dst interface{}) ValidationErrors {
	value := reflect.ValueOf(dst)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return ValidationErrors{"": {"bind target must be a non-nil struct pointer"}}
	}

	start := time.Now()
	ctx := context.Background()
	elem := value.Elem()
	target := elem.Type().Name()

	if obs := getObserver(); obs != nil {
		obs.OnBindStart(ctx, target)
	}

	errs := make(ValidationErrors)
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		key := field.Tag.Get("pref")
		if key == "" || key == "-" || !elem.Field(i).CanSet() {
			continue
		}

		raw := field.Tag.Get("default")
		if store.Has(key) {
			raw = store.Get(key)
		}

		rules := parseRules(field.Tag.Get("validate"))
		if raw == "" {
			if _, required := rules["required"]; required {
				errs.add(field.Name, "is required")
			}
			continue
		}

		if message := assign(elem.Field(i), raw); message != "" {
			errs.add(field.Name, message)
			continue
		}
		for _, message := range validate(elem.Field(i), raw, rules) {
			errs.add(field.Name, message)
		}
	}

	if obs := getObserver(); obs != nil {
		for field, messages := range errs {
			for _, message := range messages {
				obs.OnBindError(ctx, target, field, message)
			}
		}
		obs.OnBindEnd(ctx, target, len(errs), time.Since(start))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (e ValidationErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

// parseRules splits a validate tag into rule names and parameters.
func parseRules(tag string) map[string]string {
	rules := make(map[string]string)
	for _, rule := range strings.Split(tag, ",") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		if name, param, found := strings.Cut(rule, "="); found {
			rules[name] = param
		} else {
			rules[rule] = ""
		}
	}
	return rules
}

// assign converts the raw value into the field's type. It returns an error
// message, or the empty string on success.
func assign(field reflect.Value, raw string) string {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		if !isBoolLiteral(raw) {
			return "must be true or false"
		}
		field.SetBool(raw == "true")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "must be an integer"
		}
		field.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "must be a number"
		}
		field.SetFloat(f)
	default:
		return fmt.Sprintf("unsupported field type %s", field.Kind())
	}
	return ""
}

// validate applies min/max/oneof rules to an assigned field.
func validate(field reflect.Value, raw string, rules map[string]string) []string {
	var messages []string

	compare := func(param string, check func(limit float64) bool, message string) {
		limit, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return
		}
		if !check(limit) {
			messages = append(messages, message)
		}
	}

	numeric := func() (float64, bool) {
		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(field.Int()), true
		case reflect.Float32, reflect.Float64:
			return field.Float(), true
		case reflect.String:
			// Bounds on strings constrain their length.
			return float64(len(field.String())), true
		default:
			return 0, false
		}
	}

	if param, ok := rules["min"]; ok {
		if value, ok := numeric(); ok {
			compare(param, func(limit float64) bool { return value >= limit },
				"must be at least "+param)
		}
	}
	if param, ok := rules["max"]; ok {
		if value, ok := numeric(); ok {
			compare(param, func(limit float64) bool { return value <= limit },
				"must be at most "+param)
		}
	}
	if param, ok := rules["oneof"]; ok {
		allowed := strings.Fields(param)
		found := false
		for _, option := range allowed {
			if raw == option {
				found = true
				break
			}
		}
		if !found {
			messages = append(messages, "must be one of: "+strings.Join(allowed, ", "))
		}
	}

	return messages
}
