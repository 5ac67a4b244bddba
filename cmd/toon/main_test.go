package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func expect(t *testing.T, args []string, input, expectedOutput string, expectedExitCode int) {
	t.Helper()
	stdin := strings.NewReader(input)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	code := run(args, stdin, stdout, stderr)

	require.Equal(t, expectedExitCode, code, "exit code; stderr=%q", stderr.String())
	if expectedExitCode == 0 {
		require.Equal(t, expectedOutput, stdout.String())
	}
}

func TestEncodeFromStdin(t *testing.T) {
	t.Parallel()

	input := `{"id": 123, "name": "Ada"}`
	expected := "id: 123\nname: Ada\n"
	expect(t, []string{"encode"}, input, expected, 0)
}

func TestDecodeFromStdin(t *testing.T) {
	t.Parallel()

	input := "id: 123\nname: Ada"
	expected := "{\n  \"id\": 123,\n  \"name\": \"Ada\"\n}\n"
	expect(t, []string{"decode"}, input, expected, 0)
}

func TestEncodeFromFile(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "input-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{"tags": ["a", "b"]}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	expected := "tags[2]: a,b\n"
	expect(t, []string{"encode", f.Name()}, "", expected, 0)
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	expect(t, []string{"decode"}, `name: "unterminated`, "", 1)
}

func TestEncodeRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	expect(t, []string{"encode"}, `{not valid json`, "", 1)
}

func TestEncodeWithCustomDelimiter(t *testing.T) {
	t.Parallel()

	input := `{"tags": ["a", "b"]}`
	expected := "tags[2|]: a|b\n"
	expect(t, []string{"encode", "--delimiter", "pipe"}, input, expected, 0)
}

func TestDecodeNonStrictTreatsCountMismatchAsNonFatal(t *testing.T) {
	t.Parallel()

	input := "tags[3]: a,b"
	expected := "{\n  \"tags\": [\n    \"a\",\n    \"b\"\n  ]\n}\n"
	expect(t, []string{"decode", "--strict=false"}, input, expected, 0)
}
