package inference

import (
	"github.com/samcharles93/steer/internal/logits"
	"github.com/samcharles93/steer/internal/stopping"
)

// buildChain assembles the logits processor chain for a resolved request.
// Order matters: the forced-token mask goes last so it overrides whatever
// the other processors did to the step it controls.
func buildChain(req *Request, vocabSize int) (*logits.Chain, error) {
	chain := logits.NewChain()

	if req.RepetitionPenalty != 1 {
		rp, err := logits.NewRepetitionPenalty(req.RepetitionPenalty)
		if err != nil {
			return nil, invalidRequest(err)
		}
		chain.Add(rp)
	}
	if req.NoRepeatNgram > 0 {
		chain.Add(logits.NewNoRepeatNgram(req.NoRepeatNgram))
	}
	if len(req.Forced) > 0 {
		ft, err := logits.NewForcedTokens(vocabSize, req.Forced)
		if err != nil {
			return nil, invalidRequest(err)
		}
		chain.Add(ft)
	}

	return chain, nil
}

// stopSet bundles the combined stop check with the member views needed to
// attribute a finish reason once it fires.
type stopSet struct {
	all  *stopping.Criteria
	eos  *stopping.EOS
	seqs *stopping.Sequences
}

func buildStops(req *Request) (*stopSet, error) {
	mt, err := stopping.NewMaxTokens(req.MaxTokens)
	if err != nil {
		return nil, invalidRequest(err)
	}

	s := &stopSet{all: stopping.NewCriteria(mt)}
	if len(req.EOSTokens) > 0 {
		s.eos = stopping.NewEOS(req.EOSTokens...)
		s.all.Add(s.eos)
	}
	if len(req.StopSequences) > 0 {
		s.seqs, err = stopping.NewSequences(req.StopSequences...)
		if err != nil {
			return nil, invalidRequest(err)
		}
		s.all.Add(s.seqs)
	}
	return s, nil
}

// reason names the criterion responsible for a stop. An end-of-sequence
// token wins over a textual marker when both fire on the same step.
func (s *stopSet) reason(history []int, text string) string {
	if s.eos != nil && s.eos.ShouldStop(history, text) {
		return FinishEOS
	}
	if s.seqs != nil && s.seqs.ShouldStop(history, text) {
		return FinishStopString
	}
	return FinishMaxTokens
}
