package sdp_parser

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/sirupsen/logrus"
)

// Состояния разбора пары сессий.
// awaiting_first_session - строка v=0 еще не встречалась;
// local_session          - читается первая (локальная) сессия;
// remote_session         - читается вторая (удаленная) сессия;
// done                   - входные данные закончились.
const (
	StateAwaitingFirstSession = "awaiting_first_session"
	StateLocalSession         = "local_session"
	StateRemoteSession        = "remote_session"
	StateDone                 = "done"
)

const (
	eventVersion = "version"
	eventFinish  = "finish"
)

// sessionTracker оборачивает looplab/fsm.
// События: version (строка v=0), finish (конец входных данных).
type sessionTracker struct {
	machine *fsm.FSM
}

func newSessionTracker(logger logrus.FieldLogger) *sessionTracker {
	return &sessionTracker{
		machine: fsm.NewFSM(
			StateAwaitingFirstSession,
			fsm.Events{
				{Name: eventVersion, Src: []string{StateAwaitingFirstSession}, Dst: StateLocalSession},
				{Name: eventVersion, Src: []string{StateLocalSession}, Dst: StateRemoteSession},
				{Name: eventFinish, Src: []string{StateAwaitingFirstSession, StateLocalSession, StateRemoteSession}, Dst: StateDone},
			},
			fsm.Callbacks{
				"enter_state": func(_ context.Context, e *fsm.Event) {
					logger.WithFields(logrus.Fields{
						"event": e.Event,
						"from":  e.Src,
						"to":    e.Dst,
					}).Debug("переход состояния разбора")
				},
			},
		),
	}
}

// beginSession обрабатывает строку v=0
func (t *sessionTracker) beginSession(ctx context.Context) error {
	return t.machine.Event(ctx, eventVersion)
}

// finish фиксирует конец входных данных
func (t *sessionTracker) finish(ctx context.Context) error {
	return t.machine.Event(ctx, eventFinish)
}

func (t *sessionTracker) state() string {
	return t.machine.Current()
}
