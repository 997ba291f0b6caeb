package session

// Reason enumerates every way a registry operation can fail. Failures are
// reported as data so callers can branch exhaustively; the registry never
// panics on user input.
type Reason string

const (
	// Lifecycle failures.
	ReasonAlreadyCreated   Reason = "already_created"
	ReasonInvalidGameName  Reason = "invalid_gamename"
	ReasonNotCreated       Reason = "not_created"
	ReasonAlreadyStarted   Reason = "already_started"
	ReasonAlreadyJoined    Reason = "already_joined"
	ReasonNotJoined        Reason = "not_joined"
	ReasonNumPlayerInvalid Reason = "num_player_invalid"

	// Move failures. State and context are left unchanged.
	ReasonNotStarted  Reason = "not_started"
	ReasonInvalidArgs Reason = "invalid_args"
	ReasonInvalidMove Reason = "invalid_move"
)

// Result is the outcome of a registry operation without a rendered view.
type Result struct {
	OK     bool
	Reason Reason
}

func succeeded() Result {
	return Result{OK: true}
}

func failed(r Reason) Result {
	return Result{Reason: r}
}

// RenderResult is the outcome of an operation that also renders the game:
// StateText is the public, spectator-safe rendering unless the operation
// documents otherwise; GameoverText is empty while the game is running.
type RenderResult struct {
	Result
	StateText    string
	GameoverText string
}
