package binding

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/hupe1980/crc32c"
)

// Method names served by Server.
const (
	MethodIsHardwareCrcSupported = "isHardwareCrcSupported"
	MethodCalculateCrc           = "calculateCrc"
)

// Server answers JSON-RPC 2.0 calls with positional parameters:
//
//	{"jsonrpc":"2.0","id":1,"method":"calculateCrc","params":[true,"abc",0]}
type Server struct {
	dispatcher *crc32c.Dispatcher
	logger     *crc32c.Logger
}

// NewServer creates a Server routing calls through d.
func NewServer(d *crc32c.Dispatcher, logger *crc32c.Logger) *Server {
	if d == nil {
		d = crc32c.New()
	}
	if logger == nil {
		logger = crc32c.NoopLogger()
	}
	return &Server{dispatcher: d, logger: logger}
}

// Handler returns the jsonrpc2 handler for the server's methods.
func (s *Server) Handler() jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(s.handle)
}

func (s *Server) handle(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case MethodIsHardwareCrcSupported:
		return IsHardwareCrcSupported(), nil
	case MethodCalculateCrc:
		crc, err := s.calculate(req.Params)
		if err != nil {
			s.logger.WarnContext(ctx, "rejected call", "method", req.Method, "error", err)
			return nil, err
		}
		return crc, nil
	}
	return nil, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeMethodNotFound,
		Message: "method not found: " + req.Method,
	}
}

func (s *Server) calculate(params *json.RawMessage) (uint32, error) {
	var args []json.RawMessage
	if params != nil {
		if err := json.Unmarshal(*params, &args); err != nil {
			return 0, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeInvalidParams,
				Message: "params must be an array",
			}
		}
	}

	a, ok, err := ParseArgs(args)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			return 0, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: argErr.Error()}
		}
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return s.dispatcher.Checksum(a.UseHardware, a.Initial, a.Data), nil
}

// ServeConn serves one connection until the peer disconnects or ctx ends.
func (s *Server) ServeConn(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(rwc, LFObjectCodec{}), s.Handler())

	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	}
}

// Serve accepts connections from lis and serves each on its own goroutine.
// It returns when lis fails or ctx ends.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = lis.Close()
	}()

	for {
		c, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		s.logger.DebugContext(ctx, "accepted connection", "remote", c.RemoteAddr().String())
		go func() {
			_ = s.ServeConn(ctx, c)
		}()
	}
}

// LFObjectCodec frames each JSON object with a trailing newline.
type LFObjectCodec struct{}

var separator = []byte("\n")

func (LFObjectCodec) WriteObject(stream io.Writer, obj any) error {
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	if _, err := stream.Write(append(data, separator...)); err != nil {
		return err
	}
	return nil
}

func (LFObjectCodec) ReadObject(stream *bufio.Reader, v any) error {
	line, err := stream.ReadBytes('\n')
	if err != nil && (len(line) == 0 || !errors.Is(err, io.EOF)) {
		return err
	}
	return json.Unmarshal(line, v)
}
