package smc

import (
	"sync"

	"github.com/charlie0129/gosmc"
	"github.com/sirupsen/logrus"
)

// Conn is the single connection to the SMC. All register access in the
// process goes through one Conn: the mutex serializes whole operations
// (a multi-register write sequence never interleaves with another
// caller), and the connection is opened lazily on first use.
type Conn struct {
	mu     sync.Mutex
	conn   Connection
	opened bool
	diag   Reporter
}

// New returns a new Conn backed by the real SMC. The connection is not
// opened yet; the first operation opens it.
func New() *Conn {
	return &Conn{
		conn: gosmc.New(),
		diag: LogReporter{},
	}
}

// NewMock returns a new mocked Conn with prefill values.
func NewMock(prefillValues map[string][]byte) *Conn {
	conn := gosmc.NewMockConnection()

	for key, value := range prefillValues {
		err := conn.Write(key, value)
		if err != nil {
			panic(err)
		}
	}

	return &Conn{
		conn: conn,
		diag: LogReporter{},
	}
}

// NewWithConnection returns a Conn on top of an arbitrary Connection.
// Used by tests to inject failing or counting doubles.
func NewWithConnection(conn Connection) *Conn {
	return &Conn{
		conn: conn,
		diag: LogReporter{},
	}
}

// SetReporter replaces the diagnostic sink. A nil Reporter restores the
// default logrus-backed one.
func (c *Conn) SetReporter(r Reporter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r == nil {
		r = LogReporter{}
	}
	c.diag = r
}

// Open opens the connection. It is idempotent: opening an already-open
// Conn does nothing and returns nil.
func (c *Conn) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ensureOpenLocked()
}

// Close closes the connection. Closing an already-closed Conn is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.opened {
		return nil
	}
	c.opened = false

	return c.conn.Close()
}

// Read reads a value from SMC.
func (c *Conn) Read(key string) (gosmc.SMCVal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		c.diag.Report("failed to open smc connection", err)
	}

	return c.readLocked(key)
}

// Write writes a value to SMC.
func (c *Conn) Write(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureOpenLocked(); err != nil {
		c.diag.Report("failed to open smc connection", err)
	}

	return c.writeLocked(key, value)
}

// ensureOpenLocked opens the underlying connection if it is not open
// yet. Callers must hold c.mu.
func (c *Conn) ensureOpenLocked() error {
	if c.opened {
		return nil
	}

	if err := c.conn.Open(); err != nil {
		return err
	}
	c.opened = true

	return nil
}

func (c *Conn) readLocked(key string) (gosmc.SMCVal, error) {
	if !c.opened {
		return gosmc.SMCVal{}, ErrNotOpen
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
	}).Trace("Trying to read from SMC")

	v, err := c.conn.Read(key)
	if err != nil {
		return v, err
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
		"val": v,
	}).Trace("Read from SMC succeed")

	return v, nil
}

func (c *Conn) writeLocked(key string, value []byte) error {
	if !c.opened {
		return ErrNotOpen
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
		"val": value,
	}).Trace("Trying to write to SMC")

	err := c.conn.Write(key, value)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"key": key,
		"val": value,
	}).Trace("Write to SMC succeed")

	return nil
}
