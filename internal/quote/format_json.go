package quote

import (
	"github.com/goccy/go-json"

	"github.com/tbecker/insurate/internal/domain"
)

// JSONFormatter formats quote comparisons as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a single comparison
func (jf *JSONFormatter) Format(comparison *domain.QuoteComparison) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(comparison, "", "  ")
	} else {
		data, err = json.Marshal(comparison)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// FormatResult generates JSON output for a single-cadence quote
func (jf *JSONFormatter) FormatResult(result *domain.QuoteResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
