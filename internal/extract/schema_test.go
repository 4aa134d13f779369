package extract

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func nestedSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"default":              map[string]interface{}{},
		"properties": map[string]interface{}{
			"first": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]interface{}{
					"second": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":                 "object",
							"additionalProperties": false,
							"default":              "x",
							"properties": map[string]interface{}{
								"leaf": map[string]interface{}{"type": "string"},
							},
						},
					},
				},
			},
		},
	}
}

func assertNoBannedKeys(t *testing.T, v interface{}) {
	t.Helper()
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			if k == "additionalProperties" || k == "default" {
				t.Fatalf("banned key %q survived sanitization", k)
			}
			assertNoBannedKeys(t, val)
		}
	case []interface{}:
		for _, item := range vv {
			assertNoBannedKeys(t, item)
		}
	}
}

func TestSanitizeRemovesBannedKeysAtEveryDepth(t *testing.T) {
	got := SanitizeSchema(nestedSchema())
	assertNoBannedKeys(t, got)

	// everything else survives
	props := got["properties"].(map[string]interface{})
	first := props["first"].(map[string]interface{})
	second := first["properties"].(map[string]interface{})["second"].(map[string]interface{})
	items := second["items"].(map[string]interface{})
	if items["properties"].(map[string]interface{})["leaf"].(map[string]interface{})["type"] != "string" {
		t.Fatal("nested leaf type was lost")
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	once := Sanitize(nestedSchema())
	twice := Sanitize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatal("sanitize(sanitize(s)) != sanitize(s)")
	}
}

func TestSanitizeDoesNotMutateInput(t *testing.T) {
	in := nestedSchema()
	before, _ := json.Marshal(in)
	_ = Sanitize(in)
	after, _ := json.Marshal(in)
	if string(before) != string(after) {
		t.Fatal("sanitize mutated its input")
	}
}

func TestSanitizeHandlesDeepNesting(t *testing.T) {
	// 20 levels of alternating object/array nesting
	leaf := map[string]interface{}{"type": "string", "default": "d"}
	var cur interface{} = leaf
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			cur = map[string]interface{}{"type": "array", "items": cur, "default": []interface{}{}}
		} else {
			cur = map[string]interface{}{
				"type":                 "object",
				"additionalProperties": false,
				"properties":           map[string]interface{}{"v": cur},
			}
		}
	}
	got := Sanitize(cur)
	assertNoBannedKeys(t, got)
}

func TestBuiltinSchemasCarrySanitizableKeys(t *testing.T) {
	// The descriptors deliberately include additionalProperties/default so the
	// sanitizer has something to strip before the model sees them.
	for name, schema := range map[string]map[string]interface{}{
		"company":  CompanySchema(),
		"person":   PersonSchema(),
		"news":     NewsDigestSchema(),
		"identity": IdentitySchema(),
	} {
		raw, _ := json.Marshal(schema)
		if !strings.Contains(string(raw), "additionalProperties") {
			t.Errorf("%s schema should declare additionalProperties", name)
		}
		assertNoBannedKeys(t, Sanitize(schema))
	}
}
