package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	assert.Equal(t, Production, Parse("production"))
	assert.Equal(t, Production, Parse(" PRODUCTION "))
	assert.Equal(t, Local, Parse("local"))
	assert.Equal(t, Local, Parse("staging"))
	assert.Equal(t, Local, Parse(""))
}

func TestString(t *testing.T) {
	t.Setenv("MD_TEST_STRING", "  value ")
	assert.Equal(t, "value", String("MD_TEST_STRING", "x"))
	assert.Equal(t, "x", String("MD_TEST_STRING_UNSET", "x"))
}

func TestInt(t *testing.T) {
	t.Setenv("MD_TEST_INT", " 12 ")
	v, ok := Int("MD_TEST_INT", 1)
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	t.Setenv("MD_TEST_INT", "-1")
	v, ok = Int("MD_TEST_INT", 1)
	assert.True(t, ok)
	assert.Equal(t, -1, v)

	t.Setenv("MD_TEST_INT", "fast")
	v, ok = Int("MD_TEST_INT", 1)
	assert.False(t, ok)
	assert.Equal(t, 1, v)

	v, ok = Int("MD_TEST_INT_UNSET", 3)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestList(t *testing.T) {
	t.Setenv("MD_TEST_LIST", "http://a, ,http://b,")
	assert.Equal(t, []string{"http://a", "http://b"}, List("MD_TEST_LIST", nil))

	t.Setenv("MD_TEST_LIST", " , ")
	assert.Equal(t, []string{"*"}, List("MD_TEST_LIST", []string{"*"}))
}
