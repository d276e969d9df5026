package sortname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForPerson(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"single word", "Plato", "Plato"},
		{"two-part name", "George Orwell", "Orwell, George"},
		{"three-part name", "Chimamanda Ngozi Adichie", "Adichie, Chimamanda Ngozi"},
		{"initials", "J.R.R. Tolkien", "Tolkien, J.R.R."},
		{"extra whitespace", "  Jane   Austen ", "Austen, Jane"},
		{"generational suffix", "Martin Luther King Jr.", "King, Martin Luther, Jr."},
		{"generational suffix with comma", "Martin Luther King, Jr.", "King, Martin Luther, Jr."},
		{"roman numeral suffix", "John Smith III", "Smith, John, III"},
		{"credential stripped", "Jane Doe PhD", "Doe, Jane"},
		{"dotted credential stripped", "Jane Doe Ph.D.", "Doe, Jane"},
		{"credential after generational", "John Smith Jr. PhD", "Smith, John, Jr."},
		{"honorific stripped", "Dr. Maya Angelou", "Angelou, Maya"},
		{"honorific and credential", "Dr. Maya Angelou PhD", "Angelou, Maya"},
		{"particle stays with given name", "Ludwig van Beethoven", "Beethoven, Ludwig van"},
		{"honorific only before single name", "Sir Plato", "Plato"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ForPerson(tt.input))
		})
	}
}
