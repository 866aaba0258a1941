package service

import (
	"context"
	"fmt"
	"net/url"

	perr "minutes/internal/platform/errors"
	"minutes/internal/services/voiceid/domain"
)

// ClipProvider builds fetchable clip URLs against the recording store.
// The store serves ranged audio at /meetings/{id}/clip
type ClipProvider struct {
	Base string
}

// Sample implements domain.SampleProvider
func (p ClipProvider) Sample(_ context.Context, in domain.ResolveInput) (domain.Sample, error) {
	if p.Base == "" {
		return domain.Sample{}, perr.Newf(perr.ErrorCodeUnavailable, "no recording store configured")
	}
	u, err := url.Parse(p.Base)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("clip base url: %w", err)
	}
	u = u.JoinPath("meetings", in.MeetingID, "clip")

	q := u.Query()
	q.Set("start", fmt.Sprintf("%.3f", in.Start))
	q.Set("end", fmt.Sprintf("%.3f", in.End))
	u.RawQuery = q.Encode()

	return domain.Sample{
		MeetingID: in.MeetingID,
		SpeakerID: in.SpeakerID,
		UserID:    in.UserID,
		AudioURL:  u.String(),
		Start:     in.Start,
		End:       in.End,
	}, nil
}
