package evaluate

import (
	"math"

	"github.com/goccy/go-json"
)

// scoresJSON encodes an undefined MAPE as null
type scoresJSON struct {
	MAE  float64  `json:"mean_absolute_error"`
	RMSE float64  `json:"root_mean_squared_error"`
	MAPE *float64 `json:"mean_absolute_percent_error"`
}

func (s Scores) MarshalJSON() ([]byte, error) {
	out := scoresJSON{MAE: s.MAE, RMSE: s.RMSE}
	if !math.IsNaN(s.MAPE) {
		mape := s.MAPE
		out.MAPE = &mape
	}
	return json.Marshal(out)
}

func (s *Scores) UnmarshalJSON(data []byte) error {
	var in scoresJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.MAE = in.MAE
	s.RMSE = in.RMSE
	s.MAPE = math.NaN()
	if in.MAPE != nil {
		s.MAPE = *in.MAPE
	}
	return nil
}
