package stats

import "futsal-app/internal/model"

const (
	winPoints  = 3.0
	drawPoints = 1.0

	goalWeight     = 0.25
	assistWeight   = 0.25
	concededWeight = -0.25
	mvpBonus       = 1.0
)

// Resolution is what a match outcome is worth to each side. An empty
// Result means the outcome was not recognised.
type Resolution struct {
	BluePoints float64
	RedPoints  float64
	BlueResult model.Result
	RedResult  model.Result
}

func Resolve(outcome model.Outcome) Resolution {
	switch outcome {
	case model.OutcomeBlue:
		return Resolution{BluePoints: winPoints, BlueResult: model.ResultWin, RedResult: model.ResultLoss}
	case model.OutcomeRed:
		return Resolution{RedPoints: winPoints, BlueResult: model.ResultLoss, RedResult: model.ResultWin}
	case model.OutcomeDraw:
		return Resolution{BluePoints: drawPoints, RedPoints: drawPoints, BlueResult: model.ResultDraw, RedResult: model.ResultDraw}
	}
	return Resolution{}
}

func (r Resolution) For(side model.Side) (float64, model.Result) {
	if side == model.SideRed {
		return r.RedPoints, r.RedResult
	}
	return r.BluePoints, r.BlueResult
}
