package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUtterance(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Hello World  ", "hello world"},
		{"IOT", "iot"},
		{"\tRobot Arm\n", "robot arm"},
		{"", ""},
		{"   ", ""},
		{"\ufeffhello", "hello"},
		{"\ufeff Price of robot arm \ufeff", "price of robot arm"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeUtterance(tt.input))
		})
	}
}

func TestExtractSearchTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "drops stop words",
			input: "can you show me a robot project",
			want:  []string{"robot"},
		},
		{
			name:  "drops tokens shorter than three characters",
			input: "ai ml iot go",
			want:  []string{"iot"},
		},
		{
			name:  "stems robots and robotics",
			input: "robots robotics robotic",
			want:  []string{"robot", "robot", "robotic"},
		},
		{
			name:  "collapses whitespace runs",
			input: "smart   home\t\tautomation",
			want:  []string{"smart", "home", "automation"},
		},
		{
			name:  "keeps punctuation attached",
			input: "arduino, esp32?",
			want:  []string{"arduino,", "esp32?"},
		},
		{
			name:  "counts characters not bytes",
			input: "é机 机器人",
			want:  []string{"机器人"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
		{
			name:  "nothing but filler",
			input: "i want to find the details about what is looking for",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSearchTerms(tt.input))
		})
	}
}
