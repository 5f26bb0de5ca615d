package server

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func readAllTelnet(t *testing.T, input []byte) []byte {
	t.Helper()
	tr := &telnetReader{}
	tr.Reset(bytes.NewReader(input))

	var out bytes.Buffer
	buf := make([]byte, 4)
	for {
		n, err := tr.Read(buf)
		out.Write(buf[:n])
		if err != nil {
			require.ErrorIs(t, err, io.EOF)
			break
		}
		if n == 0 {
			break
		}
	}
	return out.Bytes()
}

func TestTelnetReaderPassesPlainBytes(t *testing.T) {
	got := readAllTelnet(t, []byte("PWD\r\n"))
	require.Equal(t, "PWD\r\n", string(got))
}

func TestTelnetReaderStripsNegotiation(t *testing.T) {
	input := []byte{'P', 'W', telnetIAC, telnetWILL, 0x01, 'D', '\r', '\n'}
	got := readAllTelnet(t, input)
	require.Equal(t, "PWD\r\n", string(got))
}

func TestTelnetReaderUnescapesDoubledIAC(t *testing.T) {
	input := []byte{'A', telnetIAC, telnetIAC, 'B'}
	got := readAllTelnet(t, input)
	require.Equal(t, []byte{'A', telnetIAC, 'B'}, got)
}

func TestTelnetReaderReset(t *testing.T) {
	tr := &telnetReader{}
	tr.Reset(bytes.NewReader([]byte("a")))
	tr.Reset(nil)
	require.Nil(t, tr.reader)
}
