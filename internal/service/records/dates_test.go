package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2025-03-04T10:15:00.000Z":                                       "2025-03-04",
		"2025-03-04 10:15:00":                                            "2025-03-04",
		"04/03/2025":                                                     "2025-03-04",
		"4/3/2025":                                                       "2025-03-04",
		"2025-03-04":                                                     "2025-03-04",
		"2025/03/04":                                                     "2025-03-04",
		"Mar 4, 2025":                                                    "2025-03-04",
		"Tue Mar 04 2025 10:15:00 GMT+0000 (Coordinated Universal Time)": "2025-03-04",
		"":                                                               "",
		"yesterday":                                                      "",
		"31/02/2025":                                                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDate(in), in)
	}
}
