package auth_test

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tankpad/tankpad/apitypes"
	"github.com/tankpad/tankpad/internal/server/api/apierror"
	"github.com/tankpad/tankpad/internal/server/api/auth"
)

func mustKey(t *testing.T, pw string) []byte {
	t.Helper()
	k, err := auth.DeriveKey(pw)
	require.NoError(t, err)
	return k
}

// handshake runs both sides over a pipe and returns their results.
func handshake(t *testing.T, clientKey, serverKey []byte) (cn, sn, scn, ssn []byte, cerr, serr error) {
	t.Helper()
	c, s := net.Pipe()
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer s.Close()
		scn, ssn, serr = auth.ServerHandshake(bufio.NewReader(s), s, serverKey)
		if serr != nil {
			_, _ = s.Write([]byte(`{"status":401,"title":"Unauthorized","detail":"invalid password"}` + "\n"))
		}
	}()
	cn, sn, cerr = auth.ClientHandshake(c, c, clientKey)
	<-done
	return
}

func TestHandshakeSuccess(t *testing.T) {
	key := mustKey(t, "test123")
	cn, sn, scn, ssn, cerr, serr := handshake(t, key, key)
	require.NoError(t, cerr)
	require.NoError(t, serr)
	assert.Len(t, cn, auth.NonceSize)
	assert.Equal(t, cn, scn)
	assert.Equal(t, sn, ssn)
}

func TestHandshakeWrongPassword(t *testing.T) {
	_, _, _, _, cerr, serr := handshake(t, mustKey(t, "wrongpass"), mustKey(t, "test123"))
	assert.Equal(t, apierror.ErrUnauthorized("invalid password"), serr)

	var apiErr *apitypes.ApiError
	require.ErrorAs(t, cerr, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestServerHandshakeErrors(t *testing.T) {
	key := mustKey(t, "test123")
	tests := []struct {
		name    string
		input   []byte
		wantErr string
	}{
		{name: "short magic", input: []byte("tP"), wantErr: "discard handshake magic: EOF"},
		{name: "short nonce", input: append([]byte(auth.HandshakeMagic), "short"...), wantErr: "read client nonce: unexpected EOF"},
		{name: "missing mac", input: append([]byte(auth.HandshakeMagic), bytes.Repeat([]byte{1}, auth.NonceSize)...), wantErr: "read client auth: EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.ServerHandshake(bufio.NewReader(bytes.NewReader(tt.input)), io.Discard, key)
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	_, _, err := auth.ServerHandshake(bufio.NewReader(bytes.NewReader(nil)), io.Discard, nil)
	assert.EqualError(t, err, "handshake: missing key")
}

func TestClientHandshakeBadResponse(t *testing.T) {
	var out bytes.Buffer
	_, _, err := auth.ClientHandshake(bytes.NewReader([]byte("NO\x00garbage")), &out, mustKey(t, "x"))
	assert.ErrorContains(t, err, "invalid handshake response")
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte(auth.HandshakeMagic)))
}

func TestIsAuthHandshake(t *testing.T) {
	ok, err := auth.IsAuthHandshake(bufio.NewReader(bytes.NewReader([]byte(auth.HandshakeMagic + "rest"))))
	require.NoError(t, err)
	assert.True(t, ok)

	r := bufio.NewReader(bytes.NewReader([]byte("ping\x00")))
	ok, err = auth.IsAuthHandshake(r)
	require.NoError(t, err)
	assert.False(t, ok)
	line, _ := r.ReadString('\x00')
	assert.Equal(t, "ping\x00", line, "peek must not consume")

	_, err = auth.IsAuthHandshake(bufio.NewReader(bytes.NewReader([]byte("tP"))))
	assert.ErrorIs(t, err, io.EOF)
}
