package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

// parser applies a YAML document and then an environment-variable
// overlay onto a struct value, trimmed of any multi-version
// parse-as/convert-to-current machinery since there has only ever
// been one config shape here.
type parser struct {
	prefix string
	env    map[string]string
}

func newParser(prefix string) *parser {
	p := &parser{prefix: prefix, env: make(map[string]string)}
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) == 2 {
			p.env[parts[0]] = parts[1]
		}
	}
	return p
}

// parse unmarshals in as YAML into v, then overwrites any field for
// which a PREFIX_FIELD_SUBFIELD environment variable is set.
func (p *parser) parse(in []byte, v interface{}) error {
	if err := yaml.Unmarshal(in, v); err != nil {
		return err
	}
	return p.overwriteFields(reflect.ValueOf(v), p.prefix)
}

func (p *parser) overwriteFields(v reflect.Value, prefix string) error {
	for v.Kind() == reflect.Ptr {
		v = reflect.Indirect(v)
	}
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			sf := v.Type().Field(i)
			fieldPrefix := strings.ToUpper(prefix + "_" + sf.Name)
			if e, ok := p.env[fieldPrefix]; ok {
				fieldVal := reflect.New(sf.Type)
				if err := yaml.Unmarshal([]byte(e), fieldVal.Interface()); err != nil {
					return err
				}
				v.Field(i).Set(reflect.Indirect(fieldVal))
			}
			if err := p.overwriteFields(v.Field(i), fieldPrefix); err != nil {
				return err
			}
		}
	case reflect.Map:
		return p.overwriteMap(v, prefix)
	}
	return nil
}

func (p *parser) overwriteMap(m reflect.Value, prefix string) error {
	if m.Type().Elem().Kind() == reflect.Struct {
		for _, k := range m.MapKeys() {
			if err := p.overwriteFields(m.MapIndex(k), strings.ToUpper(fmt.Sprintf("%s_%s", prefix, k))); err != nil {
				return err
			}
		}
	}

	envMapRegexp, err := regexp.Compile(fmt.Sprintf("^%s_([A-Z0-9]+)$", strings.ToUpper(prefix)))
	if err != nil {
		return err
	}
	for key, val := range p.env {
		submatches := envMapRegexp.FindStringSubmatch(key)
		if submatches == nil {
			continue
		}
		mapValue := reflect.New(m.Type().Elem())
		if err := yaml.Unmarshal([]byte(val), mapValue.Interface()); err != nil {
			return err
		}
		m.SetMapIndex(reflect.ValueOf(strings.ToLower(submatches[1])), reflect.Indirect(mapValue))
	}
	return nil
}
