package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
)

type textRenderer struct{}

// Render печатает по две строки permit на направление и две строки
// Total uplink в конце
func (textRenderer) Render(w io.Writer, flows [2]bandwidth.Bandwidth) error {
	var b strings.Builder

	for _, bw := range flows {
		fmt.Fprintf(&b, "permit %dkbps from %s %d to %s %d\n",
			bw.RTP, bw.Local.Address, bw.Local.Port,
			bw.Remote.Address, bw.Remote.Port)
		fmt.Fprintf(&b, "permit %dbps from %s %d to %s %d\n",
			bw.RTCP, bw.Local.Address, bw.Local.Port,
			bw.Remote.Address, bw.Remote.Port)
	}

	for _, bw := range flows {
		fmt.Fprintf(&b, "Total uplink from %s ---> %.1f kbps\n",
			bw.Local.Address, bw.TotalUplinkKbps())
	}

	return writeAll(w, []byte(b.String()))
}
