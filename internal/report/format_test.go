package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{123456, "1,23,456"},
		{1234567, "12,34,567"},
		{12345678, "1,23,45,678"},
		{1234567.89, "12,34,568"},
		{-1234567, "-12,34,567"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatINR(c.in), "FormatINR(%v)", c.in)
	}
}
