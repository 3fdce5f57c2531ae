package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// buildUpdateExpr converts a map of field->value into a DynamoDB SET/REMOVE
// expression. A nil value removes the attribute, which is how the OTP pair
// is cleared in one shot.
func buildUpdateExpr(updates map[string]interface{}) (expr string, names map[string]string, values map[string]types.AttributeValue, err error) {
	names = make(map[string]string)
	values = make(map[string]types.AttributeValue)
	var sets, removes string
	i := 0
	for k, v := range updates {
		nameKey := fmt.Sprintf("#f%d", i)
		names[nameKey] = k
		if v == nil {
			if removes != "" {
				removes += ", "
			}
			removes += nameKey
			i++
			continue
		}
		valueKey := fmt.Sprintf(":v%d", i)
		av, mErr := attributevalue.Marshal(v)
		if mErr != nil {
			return "", nil, nil, fmt.Errorf("marshal field %s: %w", k, mErr)
		}
		values[valueKey] = av
		if sets != "" {
			sets += ", "
		}
		sets += fmt.Sprintf("%s = %s", nameKey, valueKey)
		i++
	}
	if i == 0 {
		return "", nil, nil, fmt.Errorf("no fields to update")
	}
	if sets != "" {
		expr = "SET " + sets
	}
	if removes != "" {
		if expr != "" {
			expr += " "
		}
		expr += "REMOVE " + removes
	}
	if len(values) == 0 {
		values = nil
	}
	return expr, names, values, nil
}
