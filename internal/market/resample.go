package market

// TimeFrame selects a display resolution for resampled candles.
type TimeFrame uint8

const (
	TF15m TimeFrame = iota
	TF1H
	TF4H
	TF1D
	TF1W
	TF1M
)

func (tf TimeFrame) String() string {
	switch tf {
	case TF15m:
		return "15m"
	case TF1H:
		return "1H"
	case TF4H:
		return "4H"
	case TF1D:
		return "1D"
	case TF1W:
		return "1W"
	case TF1M:
		return "1M"
	default:
		return "UNKNOWN"
	}
}

// CandlesPerBar is the number of base 15m buckets merged into one bar.
func (tf TimeFrame) CandlesPerBar() int {
	switch tf {
	case TF1H:
		return 4
	case TF4H:
		return 16
	case TF1D:
		return 96
	case TF1W:
		return 96 * 7
	case TF1M:
		return 96 * 30
	default:
		return 1
	}
}

// ResampleCandles merges consecutive base candles into coarser bars:
// open from the first, close from the last, high/low extremes, summed
// volume. It is a derived read and never mutates history. A trailing
// partial bar is included.
func ResampleCandles(history []Candle, tf TimeFrame) []Candle {
	if len(history) == 0 {
		return nil
	}
	per := tf.CandlesPerBar()
	if per <= 1 {
		out := make([]Candle, len(history))
		copy(out, history)
		return out
	}

	out := make([]Candle, 0, len(history)/per+1)
	var cur Candle
	count := 0
	for _, c := range history {
		if count == 0 {
			cur = c
		} else {
			cur.High = max(cur.High, c.High)
			cur.Low = min(cur.Low, c.Low)
			cur.Close = c.Close
			cur.Volume += c.Volume
			cur.Timestamp = c.Timestamp
			cur.Time = c.Time
		}
		count++
		if count >= per {
			out = append(out, cur)
			count = 0
		}
	}
	if count > 0 {
		out = append(out, cur)
	}
	return out
}
