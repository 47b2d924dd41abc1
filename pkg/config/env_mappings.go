package config

import (
	"reflect"
	"sync"
)

// envToPath maps every `env` struct tag in Config to its dotted koanf path,
// for example SERVER_RATE_LIMIT -> server.rate_limit.limit.
var envToPath = sync.OnceValue(func() map[string]string {
	paths := make(map[string]string)
	collectEnvPaths(reflect.TypeOf(Config{}), "", paths)
	return paths
})

func collectEnvPaths(t reflect.Type, prefix string, out map[string]string) {
	for field := range fieldsOf(t) {
		key := field.Tag.Get("koanf")
		if key == "" || key == "-" {
			continue
		}
		if prefix != "" {
			key = prefix + "." + key
		}
		if env := field.Tag.Get("env"); env != "" && env != "-" {
			out[env] = key
		}
		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			collectEnvPaths(field.Type, key, out)
		}
	}
}

func fieldsOf(t reflect.Type) func(func(reflect.StructField) bool) {
	return func(yield func(reflect.StructField) bool) {
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() && !yield(f) {
				return
			}
		}
	}
}

// GenerateEnvToConfigMap returns a copy of the environment variable to
// config path table.
func GenerateEnvToConfigMap() map[string]string {
	src := envToPath()
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
