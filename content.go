package jsonschema

import "encoding/base64"

// evaluateContent applies contentEncoding, contentMediaType, and
// contentSchema as annotations only: 2020-12 explicitly does not require
// implementations to fail validation on undecodable or non-conforming
// content, so a decode failure here is recorded as an annotation rather
// than a ValidationError. contentSchema is evaluated when contentEncoding
// or contentMediaType is present and any contentEncoding decoded
// successfully; it sees the decoded bytes (or the raw string when there is
// no contentEncoding) as a UTF-8 string, for diagnostic purposes only.
func (v *validator) evaluateContent(schema schemaNode, instance, instancePath, schemaPath string) *ValidationResult {
	result := newValidationResult()

	encoding, hasEncoding := schema.stringKeyword("contentEncoding")
	mediaType, hasMediaType := schema.stringKeyword("contentMediaType")
	if !hasEncoding && !hasMediaType {
		return result
	}

	decoded := []byte(instance)
	if hasEncoding {
		result.Annotations["contentEncoding"] = encoding
		if decodedBytes, ok := decodeContent(encoding, instance); ok {
			decoded = decodedBytes
		} else {
			result.Annotations["contentEncodingError"] = "could not decode as " + encoding
			return result
		}
	}

	if hasMediaType {
		result.Annotations["contentMediaType"] = mediaType
	}

	if contentSchemaRaw, ok := schema.keyword("contentSchema"); ok {
		if sub, ok := asSchemaNode(contentSchemaRaw); ok {
			path := pointerJoin(schemaPath, "contentSchema")
			subResult, _ := v.validate(sub, path, string(decoded), instancePath, 0, map[string]bool{})
			if !subResult.Valid {
				result.Annotations["contentSchemaError"] = subResult.Summary()
			}
		}
	}

	return result
}

func decodeContent(encoding, instance string) ([]byte, bool) {
	switch encoding {
	case "base64":
		decoded, err := base64.StdEncoding.DecodeString(instance)
		if err != nil {
			return nil, false
		}
		return decoded, true
	case "7bit", "8bit", "binary", "quoted-printable":
		return []byte(instance), true
	default:
		return nil, false
	}
}
