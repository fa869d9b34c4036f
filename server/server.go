package server

import (
	"context"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// AllInterfaces is the host every listener binds to
const AllInterfaces = "0.0.0.0"

// Server is an HTTP/1.1 server bound to one TCP port
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	errorLog   *io.PipeWriter
	done       chan error
}

// Start binds AllInterfaces:port and serves handler in the background.
// Port 0 picks a free port; Addr reports the one bound.
func Start(port uint16, handler http.Handler) (*Server, error) {
	address := net.JoinHostPort(AllInterfaces, strconv.Itoa(int(port)))
	listener, err := net.Listen("tcp4", address)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to bind %s", address)
	}

	errorLog := log.StandardLogger().WriterLevel(log.WarnLevel)
	server := &Server{
		httpServer: &http.Server{
			Handler:  handler,
			ErrorLog: stdlog.New(errorLog, "", 0),
		},
		listener: listener,
		errorLog: errorLog,
		done:     make(chan error, 1),
	}

	boundPort := server.Addr().Port
	log.WithField("port", boundPort).Infof("frontend server listening on port %d", boundPort)

	go server.serve()
	return server, nil
}

func (server *Server) serve() {
	err := server.httpServer.Serve(server.listener)
	if err == http.ErrServerClosed {
		err = nil
	}
	server.done <- errors.Wrap(err, "server stopped")
	close(server.done)
}

// Addr returns the bound TCP address
func (server *Server) Addr() *net.TCPAddr {
	return server.listener.Addr().(*net.TCPAddr)
}

// Done yields the error that stopped serving (nil after Shutdown), then closes
func (server *Server) Done() <-chan error {
	return server.done
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx expires
func (server *Server) Shutdown(ctx context.Context) error {
	defer server.errorLog.Close()
	if err := server.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	log.WithField("port", server.Addr().Port).Debug("frontend server stopped")
	return nil
}
