package extract

// Schema descriptors are explicit JSON-Schema-shaped values. They are what the
// generative capability is constrained with and what its reply is validated
// against. No reflection: the descriptor is the contract.

// Sanitize strips the keys the generative structured-output mode rejects
// (additionalProperties, default) at every nesting level. It is pure: the
// input value is never mutated, and it is idempotent.
func Sanitize(schema interface{}) interface{} {
	switch v := schema.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			if k == "additionalProperties" || k == "default" {
				continue
			}
			out[k] = Sanitize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = Sanitize(item)
		}
		return out
	default:
		return schema
	}
}

// SanitizeSchema is Sanitize specialized to a top-level object schema.
func SanitizeSchema(schema map[string]interface{}) map[string]interface{} {
	return Sanitize(schema).(map[string]interface{})
}

func object(props map[string]interface{}, required ...string) map[string]interface{} {
	m := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		m["required"] = required
	}
	return m
}

func array(items map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": items, "default": []interface{}{}}
}

func text() map[string]interface{} {
	return map[string]interface{}{"type": "string"}
}

func optionalText() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"string", "null"}}
}

func optionalInt() map[string]interface{} {
	return map[string]interface{}{"type": []interface{}{"integer", "null"}}
}

func score() map[string]interface{} {
	return map[string]interface{}{"type": "number", "minimum": 0.0, "maximum": 1.0}
}

func stringList() map[string]interface{} { return array(text()) }

// CompanySchema describes models.CompanyProfile minus the server-filled
// metadata (id, last_updated).
func CompanySchema() map[string]interface{} {
	return object(map[string]interface{}{
		"name":           text(),
		"description":    text(),
		"industry":       optionalText(),
		"headquarters":   optionalText(),
		"website":        optionalText(),
		"employee_count": optionalText(),
		"founded_year":   optionalInt(),

		"products_services": stringList(),
		"target_markets":    stringList(),
		"competitors":       stringList(),

		"key_executives": array(object(map[string]interface{}{
			"name":  text(),
			"title": text(),
		}, "name", "title")),

		"recent_news":    stringList(),
		"recent_funding": optionalText(),

		"pain_points":    stringList(),
		"opportunities":  stringList(),
		"talking_points": stringList(),

		"confidence_score": score(),
	}, "name", "description")
}

// PersonSchema describes models.PersonProfile minus the server-filled metadata.
func PersonSchema() map[string]interface{} {
	return object(map[string]interface{}{
		"name":         text(),
		"linkedin_url": text(),
		"headline":     optionalText(),
		"location":     optionalText(),

		"current_company":  optionalText(),
		"current_role":     optionalText(),
		"role_duration":    optionalText(),
		"responsibilities": stringList(),

		"previous_companies": array(object(map[string]interface{}{
			"company": text(),
			"role":    text(),
		}, "company", "role")),
		"education":        stringList(),
		"total_experience": optionalText(),

		"post_topics": stringList(),
		"interests":   stringList(),
		"skills":      stringList(),

		"communication_style":     optionalText(),
		"decision_making_factors": stringList(),
		"potential_needs":         stringList(),

		"engagement_tips":       stringList(),
		"common_connections":    stringList(),
		"conversation_starters": stringList(),

		"profile_completeness": score(),
	}, "name")
}

// NewsDigestSchema describes models.NewsDigest minus server-filled metadata.
func NewsDigestSchema() map[string]interface{} {
	return object(map[string]interface{}{
		"topic":         text(),
		"mode":          text(),
		"summary":       text(),
		"top_takeaways": stringList(),
		"articles": array(object(map[string]interface{}{
			"title":      text(),
			"url":        text(),
			"source":     text(),
			"published":  optionalText(),
			"summary":    text(),
			"key_points": stringList(),
		}, "title", "url", "summary")),
		"citations":  stringList(),
		"confidence": score(),
	}, "topic", "summary")
}

// IdentitySchema describes models.Identity as extracted from a profile page.
// linkedin_url and username are attached afterwards by the caller.
func IdentitySchema() map[string]interface{} {
	return object(map[string]interface{}{
		"name":                  text(),
		"company":               text(),
		"role":                  text(),
		"location":              text(),
		"bio":                   text(),
		"skills":                stringList(),
		"previous_companies":    stringList(),
		"conversation_starters": stringList(),
		"discussion_topics":     stringList(),
	}, "name")
}
