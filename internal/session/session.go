// Package session drives the guidance protocol for one connected robot:
// authentication handshake, navigation loop, recharge suspension and
// terminal responses.
package session

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/robot-guidance/server/internal/auth"
	"github.com/robot-guidance/server/internal/events"
	"github.com/robot-guidance/server/internal/protocol"
	"github.com/robot-guidance/server/internal/robot"
)

// Config carries the per-session protocol parameters.
type Config struct {
	ServerKey       uint16
	ClientKey       uint16
	ReadTimeout     time.Duration
	RechargeTimeout time.Duration
}

// Session owns one client connection. Sessions share no state with each
// other; everything here is confined to the connection's goroutine.
type Session struct {
	id     string
	conn   net.Conn
	framer *protocol.Framer
	writer *protocol.Writer
	robot  *robot.Robot
	fsm    *FSM
	cfg    Config
	sink   events.Sink
	logger *zap.Logger

	hash       uint16
	username   string
	authorized bool
	charging   bool
}

// New creates a session for an accepted connection.
func New(conn net.Conn, cfg Config, sink events.Sink, logger *zap.Logger) *Session {
	if sink == nil {
		sink = events.Nop()
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		conn:   conn,
		framer: protocol.NewFramer(conn),
		writer: protocol.NewWriter(conn),
		robot:  robot.New(),
		fsm:    newFSM(),
		cfg:    cfg,
		sink:   sink,
		logger: logger.With(
			zap.String("session_id", id),
			zap.String("remote_addr", conn.RemoteAddr().String()),
		),
	}
}

// Run serves the connection until a terminal state and closes it. Every
// exit path releases the socket; protocol violations send their response
// first, I/O failures and timeouts close silently.
func (s *Session) Run(ctx context.Context) {
	defer s.conn.Close()

	s.logger.Info("Session started")
	s.publish(ctx, events.TypeConnected, "")

	err := s.serve(ctx)
	switch {
	case err == nil:
		s.logger.Info("Session finished")
	case isTimeout(err):
		s.logger.Info("Read deadline expired", zap.String("phase", s.fsm.Phase().String()))
		s.publish(ctx, events.TypeTimeout, "")
	default:
		var perr *protocol.Error
		if errors.As(err, &perr) {
			if sendErr := s.writer.Send(perr.Response); sendErr != nil {
				s.logger.Warn("Failed to send error response", zap.Error(sendErr))
			}
			s.logger.Warn("Protocol violation",
				zap.String("phase", s.fsm.Phase().String()),
				zap.String("response", string(perr.Response)),
			)
			s.publish(ctx, events.TypeRejected, string(perr.Response))
		} else {
			s.logger.Warn("Connection error", zap.Error(err))
		}
	}

	s.publish(ctx, events.TypeDisconnected, "")
}

func (s *Session) serve(ctx context.Context) error {
	if err := s.handshake(ctx); err != nil {
		return err
	}
	return s.navigate(ctx)
}

// handshake runs the username/confirmation exchange.
func (s *Session) handshake(ctx context.Context) error {
	msg, err := s.next()
	if err != nil {
		return err
	}
	s.username = msg.Text
	s.hash = auth.UsernameHash(msg.Text)
	s.advance(protocol.PhaseConfirmation)
	if err := s.writer.Send(protocol.AcceptCode(auth.ServerCode(s.hash, s.cfg.ServerKey))); err != nil {
		return err
	}

	msg, err = s.next()
	if err != nil {
		return err
	}
	if !auth.VerifyClient(msg.Code, s.cfg.ClientKey, s.hash) {
		return protocol.ErrLoginFailed
	}
	if err := s.writer.Send(protocol.RespOK); err != nil {
		return err
	}
	s.authorized = true
	s.advance(protocol.PhasePosition)
	s.logger.Info("Robot authorized", zap.String("username", s.username))
	s.publish(ctx, events.TypeAuthorized, string(protocol.RespOK))
	return nil
}

// navigate loops command -> report until a pickup succeeds or every
// target cell is searched.
func (s *Session) navigate(ctx context.Context) error {
	for {
		switch cmd := robot.NextCommand(s.robot); cmd {
		case robot.CmdDone:
			s.logger.Info("Every target cell searched, closing")
			return nil

		case robot.CmdPickup:
			s.advance(protocol.PhasePickup)
			if err := s.writer.Send(protocol.RespGetMessage); err != nil {
				return err
			}
			msg, err := s.next()
			if err != nil {
				return err
			}
			s.robot.MarkSearched()
			if msg.Text != "" {
				if err := s.writer.Send(protocol.RespLogout); err != nil {
					return err
				}
				s.logger.Info("Message retrieved", zap.Int("size", len(msg.Text)))
				s.publish(ctx, events.TypeCompleted, string(protocol.RespLogout))
				return nil
			}
			s.advance(protocol.PhasePosition)

		default:
			s.advance(protocol.PhasePosition)
			if err := s.writer.Send(commandResponse(cmd)); err != nil {
				return err
			}
			msg, err := s.next()
			if err != nil {
				return err
			}
			s.robot.MoveTo(msg.X, msg.Y)
		}
	}
}

// next reads the message the current phase expects, transparently
// serving any recharging interludes in between.
func (s *Session) next() (protocol.Message, error) {
	for {
		msg, err := s.read(s.fsm.Phase())
		if err != nil {
			return protocol.Message{}, err
		}
		if msg.Kind != protocol.KindRecharging {
			return msg, nil
		}
		if err := s.recharge(); err != nil {
			return protocol.Message{}, err
		}
	}
}

// read arms the deadline for the current mode and reads one framed,
// parsed request.
func (s *Session) read(phase protocol.Phase) (protocol.Message, error) {
	timeout := s.cfg.ReadTimeout
	if s.charging {
		timeout = s.cfg.RechargeTimeout
	}
	if err := s.conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return protocol.Message{}, err
	}
	payload, err := s.framer.Next(protocol.MaxFrame(phase))
	if err != nil {
		return protocol.Message{}, err
	}
	return protocol.Parse(phase, payload)
}

// recharge suspends the session until FULL POWER arrives. The extended
// deadline is armed together with the mode switch; anything other than
// FULL POWER is rejected by the charging grammar.
func (s *Session) recharge() error {
	s.charging = true
	s.fsm.EnterCharging()
	s.logger.Debug("Robot recharging")
	if _, err := s.read(protocol.PhaseCharging); err != nil {
		return err
	}
	s.charging = false
	s.fsm.LeaveCharging()
	s.logger.Debug("Robot back to full power")
	return nil
}

// advance moves the FSM and flags the transitions the table forbids;
// those would be server bugs, not client behavior.
func (s *Session) advance(target protocol.Phase) {
	if !s.fsm.TransitionTo(target) {
		s.logger.Error("Illegal phase transition",
			zap.String("from", s.fsm.Phase().String()),
			zap.String("to", target.String()),
		)
	}
}

func (s *Session) publish(ctx context.Context, typ events.Type, response string) {
	s.sink.Publish(ctx, events.Event{
		Type:       typ,
		SessionID:  s.id,
		RemoteAddr: s.conn.RemoteAddr().String(),
		Username:   s.username,
		Response:   response,
		Timestamp:  time.Now().UnixMilli(),
	})
}

func commandResponse(cmd robot.Command) protocol.Response {
	switch cmd {
	case robot.CmdTurnLeft:
		return protocol.RespTurnLeft
	case robot.CmdTurnRight:
		return protocol.RespTurnRight
	default:
		return protocol.RespMove
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
