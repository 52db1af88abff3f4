package auth

import (
	"bytes"
	"crypto/cipher"
	"encoding/binary"
	"errors"
	"io"
	"net"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
)

// maxFrameSize bounds one encrypted frame; API messages are tiny.
const maxFrameSize = 64 * 1024

var (
	ErrFrameTooLarge = errors.New("encrypted frame too large")
	ErrFrameNonce    = errors.New("encrypted frame has unexpected nonce")
)

// Role is the side of the session a Conn speaks for. Both sides share one
// session key, so the role splits the nonce space between directions.
type Role byte

const (
	RoleClient Role = 0
	RoleServer Role = 1
)

func (r Role) peer() Role { return r ^ 1 }

// Conn frames every Write as length | nonce | ChaCha20-Poly1305 ciphertext.
// The nonce is the writer's role byte followed by a per-direction counter,
// so a session key must never be reused across connections.
type Conn struct {
	net.Conn
	aead cipher.AEAD
	role Role

	wmu     sync.Mutex
	sendCtr uint64

	rmu     sync.Mutex
	recvCtr uint64
	recvBuf bytes.Buffer
}

// WrapConn encrypts conn with sessionKey, writing as role and accepting
// only frames from the other role.
func WrapConn(conn net.Conn, sessionKey []byte, role Role) (*Conn, error) {
	aead, err := chacha20poly1305.New(sessionKey)
	if err != nil {
		return nil, err
	}
	return &Conn{Conn: conn, aead: aead, role: role}, nil
}

func (c *Conn) nonce(from Role, ctr uint64) []byte {
	nonce := make([]byte, c.aead.NonceSize())
	nonce[0] = byte(from)
	binary.BigEndian.PutUint64(nonce[4:], ctr)
	return nonce
}

func (c *Conn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	nonce := c.nonce(c.role, c.sendCtr)
	c.sendCtr++

	frame := make([]byte, 4, 4+len(nonce)+len(p)+c.aead.Overhead())
	frame = append(frame, nonce...)
	frame = c.aead.Seal(frame, nonce, p, nil)
	binary.BigEndian.PutUint32(frame[:4], uint32(len(frame)-4))

	if _, err := c.Conn.Write(frame); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *Conn) Read(p []byte) (int, error) {
	c.rmu.Lock()
	defer c.rmu.Unlock()

	if c.recvBuf.Len() == 0 {
		var hdr [4]byte
		if _, err := io.ReadFull(c.Conn, hdr[:]); err != nil {
			return 0, err
		}
		length := binary.BigEndian.Uint32(hdr[:])
		ns := uint32(c.aead.NonceSize())
		if length > maxFrameSize {
			return 0, ErrFrameTooLarge
		}
		if length < ns+uint32(c.aead.Overhead()) {
			return 0, io.ErrUnexpectedEOF
		}
		pkt := make([]byte, length)
		if _, err := io.ReadFull(c.Conn, pkt); err != nil {
			return 0, err
		}
		if !bytes.Equal(pkt[:ns], c.nonce(c.role.peer(), c.recvCtr)) {
			return 0, ErrFrameNonce
		}
		pt, err := c.aead.Open(nil, pkt[:ns], pkt[ns:], nil)
		if err != nil {
			return 0, err
		}
		c.recvCtr++
		c.recvBuf.Write(pt)
	}
	return c.recvBuf.Read(p)
}
