package output

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/chrisdamba/cafedatasim/internal/models"
)

// formatValue renders a row value as text. Missing values become "".
func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return models.FormatTimestamp(x)
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// rowJSON encodes a row as a JSON object with the given keys in column
// order. Timestamps use the flat-file layout and missing values become null.
func rowJSON(keys []string, row []interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(name)
		buf.Write(key)
		buf.WriteByte(':')

		v := row[i]
		if ts, ok := v.(time.Time); ok {
			v = models.FormatTimestamp(ts)
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
