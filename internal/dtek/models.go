package dtek

import (
	"bytes"
	"encoding/json"
)

// HourStatus is DTEK's per-hour power state code.
type HourStatus string

const (
	StatusYes     HourStatus = "yes"     // power available the whole hour
	StatusNo      HourStatus = "no"      // power off the whole hour
	StatusFirst   HourStatus = "first"   // off the first half hour, on the second
	StatusSecond  HourStatus = "second"  // on the first half hour, off the second
	StatusMFirst  HourStatus = "mfirst"  // possible outage, first half
	StatusMSecond HourStatus = "msecond" // possible outage, second half
)

// HoursData maps hour-of-day keys "1".."24" to a status. Hour h covers the
// wall-clock interval [h-1, h).
type HoursData map[string]HourStatus

// HouseData is the per-house record inside the response. sub_type together
// with at least one of the dates marks an active outage period.
type HouseData struct {
	SubType       string   `json:"sub_type"`
	SubTypeReason []string `json:"sub_type_reason"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
}

// Fact carries today's anchor and the hour grids keyed by unix day, then by
// reason code.
type Fact struct {
	Today  FlexString                      `json:"today"`
	Update string                          `json:"update"`
	Data   map[string]map[string]HoursData `json:"data"`
}

// Preset holds the locale lookup tables shipped with the schedule.
type Preset struct {
	SchNames map[string]string `json:"sch_names"`
	TimeType map[string]string `json:"time_type"`
}

// Response is the getHomeNum payload.
type Response struct {
	Fact   Fact                  `json:"fact"`
	Preset Preset                `json:"preset"`
	Data   map[string]*HouseData `json:"data"`
}

// FlexString decodes a JSON field DTEK serves inconsistently as either a
// number or a string. Invalid content is kept verbatim; validation happens
// at extraction time, not decode time.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}
