package dynamo

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hirebase/internal/domain"
)

// encodeCursor turns a query's LastEvaluatedKey into an opaque page token.
// Every key attribute in our schema is a string, so the key flattens to a
// plain string map before the JSON/base64 wrapping.
func encodeCursor(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}

	var plain map[string]string
	if err := attributevalue.UnmarshalMap(lastKey, &plain); err != nil {
		return "", fmt.Errorf("unmarshal continuation key: %w", err)
	}

	raw, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("marshal continuation key: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decodeCursor reverses encodeCursor. A token that does not decode is a
// caller error, not a store failure.
func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	if cursor == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed page cursor", domain.ErrValidation)
	}

	var plain map[string]string
	if err := json.Unmarshal(raw, &plain); err != nil {
		return nil, fmt.Errorf("%w: malformed page cursor", domain.ErrValidation)
	}

	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, fmt.Errorf("marshal continuation key: %w", err)
	}

	return key, nil
}
