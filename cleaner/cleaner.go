package cleaner

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/s4mli/farola/common"
	"github.com/sirupsen/logrus"
)

// Cleanable is anything holding a resource worth releasing at shutdown.
type Cleanable interface {
	Stop()
	Name() string
}

var (
	resourcesMu sync.Mutex
	resources   []Cleanable
)

func Register(r ...Cleanable) {
	resourcesMu.Lock()
	defer resourcesMu.Unlock()
	resources = append(resources, r...)
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// stops every registered resource in reverse registration order.
func Run(ctx context.Context, logger logrus.FieldLogger) {
	done := make(chan struct{})
	cleanup := func(reason string) {
		resourcesMu.Lock()
		defer resourcesMu.Unlock()
		for i := len(resources) - 1; i >= 0; i-- {
			logger.Warnf("( %s ) terminated, %s", resources[i].Name(), reason)
			resources[i].Stop()
		}
		resources = nil
		close(done)
	}
	common.TerminateIf(ctx,
		func() { cleanup("cancel") },
		func(s os.Signal) { cleanup(fmt.Sprintf("signal %+v", s)) })
	<-done
}
