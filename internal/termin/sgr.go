package termin

import "github.com/grindlemire/go-interactor"

// Input is one decoded unit of terminal input: a pointer event or a key byte.
type Input struct {
	Pointer interactor.RawEvent
	IsKey   bool
	Key     byte
}

// parseSGR decodes one SGR-1006 mouse report at the start of data.
// Format: ESC [ < button ; x ; y M (press/motion) or ... m (release).
//
//	bits 0-1: button (0=left, 1=middle, 2=right, 3=none)
//	bits 2-4: shift, meta, ctrl
//	bit 5: motion
//	bit 6: wheel
//
// It returns the event, whether the report maps to a raw event, and the
// number of bytes consumed. consumed is 0 when data does not start with a
// complete report.
func parseSGR(data []byte) (ev interactor.RawEvent, ok bool, consumed int) {
	if len(data) < 9 || data[0] != 0x1b || data[1] != '[' || data[2] != '<' {
		return interactor.RawEvent{}, false, 0
	}

	i := 3
	var params [3]int
	stage := 0

	for i < len(data) {
		b := data[i]

		if b >= '0' && b <= '9' {
			params[stage] = params[stage]*10 + int(b-'0')
			i++
			continue
		}

		if b == ';' {
			stage++
			if stage > 2 {
				return interactor.RawEvent{}, false, 0
			}
			i++
			continue
		}

		if b != 'M' && b != 'm' {
			return interactor.RawEvent{}, false, 0
		}
		if stage != 2 {
			return interactor.RawEvent{}, false, 0
		}
		consumed = i + 1

		button, x, y := params[0], params[1], params[2]
		ev = interactor.RawEvent{
			// Reports are 1-indexed.
			X: float64(x - 1),
			Y: float64(y - 1),
		}

		switch {
		case button&64 != 0:
			// Wheel; not a pointer transition.
			return ev, false, consumed
		case button&32 != 0:
			ev.Kind = interactor.RawMove
		case button&3 != 0:
			// Middle, right, or legacy release without a button.
			if button&3 == 3 && b == 'M' {
				ev.Kind = interactor.RawRelease
				return ev, true, consumed
			}
			return ev, false, consumed
		case b == 'M':
			ev.Kind = interactor.RawPress
		default:
			ev.Kind = interactor.RawRelease
		}
		return ev, true, consumed
	}

	// Incomplete sequence.
	return interactor.RawEvent{}, false, 0
}

// parseInput splits data into inputs. Bytes that are neither mouse reports
// nor printable keys are dropped. The returned remainder is an incomplete
// trailing escape sequence to be prefixed to the next read.
func parseInput(data []byte) (inputs []Input, remainder []byte) {
	for len(data) > 0 {
		if data[0] == 0x1b {
			if len(data) >= 3 && data[1] == '[' && data[2] == '<' {
				ev, ok, n := parseSGR(data)
				if n == 0 {
					if complete(data) {
						data = data[1:]
						continue
					}
					return inputs, data
				}
				if ok {
					inputs = append(inputs, Input{Pointer: ev})
				}
				data = data[n:]
				continue
			}
			if len(data) < 3 && (len(data) == 1 || data[1] == '[') {
				return inputs, data
			}
			inputs = append(inputs, Input{IsKey: true, Key: 0x1b})
			data = data[1:]
			continue
		}
		inputs = append(inputs, Input{IsKey: true, Key: data[0]})
		data = data[1:]
	}
	return inputs, nil
}

// complete reports whether an SGR prefix already contains its final byte,
// in which case a zero-length parse means it was malformed, not truncated.
func complete(data []byte) bool {
	for _, b := range data[3:] {
		if b == 'M' || b == 'm' {
			return true
		}
		if (b < '0' || b > '9') && b != ';' {
			return true
		}
	}
	return false
}
