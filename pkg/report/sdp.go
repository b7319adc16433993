package report

import (
	"fmt"
	"io"

	"github.com/arzzra/sdpbw/pkg/bandwidth"
	"github.com/pion/sdp/v3"
)

const unspecifiedAddress = "::"

type sdpRenderer struct{}

// Render выводит каждое направление как SDP описание отправителя с
// итоговыми b=AS/RS/RR. Результат снова пригоден как вход sdpbw.
func (sdpRenderer) Render(w io.Writer, flows [2]bandwidth.Bandwidth) error {
	var out []byte
	for i, bw := range flows {
		raw, err := BuildSessionDescription(bw).Marshal()
		if err != nil {
			return fmt.Errorf("не удалось сформировать SDP для направления %d: %w", i+1, err)
		}
		out = append(out, raw...)
	}
	return writeAll(w, out)
}

// BuildSessionDescription строит SDP описание стороны bw.Local с
// разрешенной полосой направления
func BuildSessionDescription(bw bandwidth.Bandwidth) *sdp.SessionDescription {
	address := bw.Local.Address
	if address == "" {
		address = unspecifiedAddress
	}

	protos := bw.Local.Protos
	if len(protos) == 0 {
		protos = []string{"RTP", "AVP"}
	}

	media := &sdp.MediaDescription{
		MediaName: sdp.MediaName{
			Media:   "audio",
			Port:    sdp.RangedPort{Value: bw.Local.Port},
			Protos:  protos,
			Formats: bw.Local.Formats,
		},
		ConnectionInformation: &sdp.ConnectionInformation{
			NetworkType: "IN",
			AddressType: "IP6",
			Address:     &sdp.Address{Address: address},
		},
		Bandwidth: []sdp.Bandwidth{
			{Type: "AS", Bandwidth: uint64(bw.RTP)},
			{Type: "RS", Bandwidth: uint64(bw.RS)},
			{Type: "RR", Bandwidth: uint64(bw.RR)},
		},
	}

	return &sdp.SessionDescription{
		Origin: sdp.Origin{
			Username:       "-",
			NetworkType:    "IN",
			AddressType:    "IP6",
			UnicastAddress: address,
		},
		SessionName: "-",
		TimeDescriptions: []sdp.TimeDescription{
			{Timing: sdp.Timing{StartTime: 0, StopTime: 0}},
		},
		MediaDescriptions: []*sdp.MediaDescription{media},
	}
}
