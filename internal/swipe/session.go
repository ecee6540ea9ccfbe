package swipe

// Session holds one deck per tab for a single client session
type Session struct {
	decks  map[FeedType]*Deck
	active FeedType
}

func NewSession(fetcher Fetcher, liker Liker) *Session {
	return &Session{
		decks: map[FeedType]*Deck{
			FeedRecommended: NewDeck(FeedRecommended, fetcher, liker),
			FeedFollowings:  NewDeck(FeedFollowings, fetcher, liker),
		},
		active: FeedRecommended,
	}
}

func (s *Session) Deck(feed FeedType) (*Deck, error) {
	d, ok := s.decks[feed]
	if !ok {
		return nil, ErrUnknownFeed
	}
	return d, nil
}

// Switch changes the active tab; the other tab keeps its position
func (s *Session) Switch(feed FeedType) (*Deck, error) {
	d, err := s.Deck(feed)
	if err != nil {
		return nil, err
	}
	s.active = feed
	return d, nil
}

func (s *Session) Active() *Deck { return s.decks[s.active] }
