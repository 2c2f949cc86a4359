package news

// NewsID uniquely identifies a news item.
type NewsID int64

// Impact grades how hard a news item hits the market.
type Impact uint8

const (
	ImpactLow Impact = iota
	ImpactMedium
	ImpactHigh
)

func (i Impact) String() string {
	switch i {
	case ImpactLow:
		return "LOW"
	case ImpactMedium:
		return "MEDIUM"
	case ImpactHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Sentiment is the directional read of a news item.
type Sentiment uint8

const (
	SentimentNeutral Sentiment = iota
	SentimentBullish
	SentimentBearish
)

func (s Sentiment) String() string {
	switch s {
	case SentimentNeutral:
		return "NEUTRAL"
	case SentimentBullish:
		return "BULLISH"
	case SentimentBearish:
		return "BEARISH"
	default:
		return "UNKNOWN"
	}
}

// ImpactValue maps (impact, sentiment) to the signed drift added to the
// market's news sentiment bias: HIGH=0.08, MEDIUM=0.04, LOW=0.01,
// negated for bearish and zeroed for neutral.
func ImpactValue(i Impact, s Sentiment) float64 {
	var mag float64
	switch i {
	case ImpactHigh:
		mag = 0.08
	case ImpactMedium:
		mag = 0.04
	case ImpactLow:
		mag = 0.01
	}
	switch s {
	case SentimentBearish:
		return -mag
	case SentimentNeutral:
		return 0
	default:
		return mag
	}
}

// Item is a market-moving news event.
type Item struct {
	ID          NewsID
	Title       string
	Description string
	Impact      Impact
	Sentiment   Sentiment
	GameMinute  float64
}

// FeedKind classifies social feed posts.
type FeedKind uint8

const (
	FeedUser FeedKind = iota
	FeedWhale
	FeedNews
	FeedAlert
)

func (k FeedKind) String() string {
	switch k {
	case FeedUser:
		return "USER"
	case FeedWhale:
		return "WHALE"
	case FeedNews:
		return "NEWS"
	case FeedAlert:
		return "ALERT"
	default:
		return "UNKNOWN"
	}
}

// FeedItem is one post in the social feed.
type FeedItem struct {
	ID         NewsID
	Author     string
	Handle     string
	Content    string
	GameMinute float64
	Likes      int
	Comments   int
	Kind       FeedKind
}
