package engine

// Apply performs m on the tableau. On error the tableau is left exactly as it
// was, so callers may apply directly to a scratch clone and discard it.
func (t *Tableau) Apply(m Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return ErrInvalidCoordinate
	}
	if m.From.Kind == FoundationPile {
		return ErrInvalidSource
	}
	if m.From == m.To {
		return ErrSameCoordinate
	}
	if m.Count < 0 || m.Count > MaxCount {
		return ErrInvalidCount
	}

	if m.From.Kind == CascadePile && m.To.Kind == CascadePile {
		if handled, err := t.moveRun(m); handled {
			return err
		}
	}
	return t.moveCard(m.From, m.To)
}

// moveRun tries to carry a run between cascades in one move. It reports
// handled=false when the single card path should take over.
//
// Only the smallest depth whose card fits the destination is tried. If the
// cards above it are not a run the search stops there.
func (t *Tableau) moveRun(m Move) (handled bool, err error) {
	src, dst := &t.Cascades[m.From.Index], &t.Cascades[m.To.Index]
	if src.IsEmpty() {
		return true, ErrEmptySource
	}

	maxRun := t.MaxRun(m.From.Index, m.To.Index)
	if m.Count > 0 {
		maxRun = min(maxRun, m.Count)
	}

	top, ok := dst.Peek()
	if !ok {
		if m.Count == 0 {
			return false, nil
		}
		run, ok := src.TryPopStack(maxRun)
		if !ok {
			return false, nil
		}
		dst.PushStack(run)
		return true, nil
	}

	// Nothing goes on an Ace
	expected, err := top.Rank.TryDecrement()
	if err != nil {
		return false, nil
	}

	for depth := 1; depth <= maxRun; depth++ {
		card, _ := src.At(depth)
		if card.Rank != expected {
			continue
		}
		run, ok := src.TryPopStack(depth)
		if !ok {
			return false, nil
		}
		if err := dst.TryPushStack(run); err != nil {
			src.PushStack(run)
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// moveCard moves the single top card of from onto to, putting it back where
// it came from when the destination refuses it
func (t *Tableau) moveCard(from, to Coordinate) error {
	card, ok := t.take(from)
	if !ok {
		return ErrEmptySource
	}
	if err := t.place(card, to); err != nil {
		t.restore(card, from)
		return err
	}
	return nil
}

func (t *Tableau) take(from Coordinate) (Card, bool) {
	switch from.Kind {
	case CascadePile:
		return t.Cascades[from.Index].Pop()
	case CellPile:
		return t.Cells[from.Index].Take()
	}
	return Card{}, false
}

func (t *Tableau) place(card Card, to Coordinate) error {
	switch to.Kind {
	case CascadePile:
		return t.Cascades[to.Index].TryPush(card)
	case CellPile:
		return t.Cells[to.Index].TryPush(card)
	case FoundationPile:
		return t.Foundations[to.Index].TryPush(card)
	}
	return ErrInvalidCoordinate
}

// restore returns card to the pile it was just taken from. The origin slot is
// known to be free so this cannot fail.
func (t *Tableau) restore(card Card, from Coordinate) {
	switch from.Kind {
	case CascadePile:
		t.Cascades[from.Index].Push(card)
	case CellPile:
		_ = t.Cells[from.Index].TryPush(card)
	}
}
