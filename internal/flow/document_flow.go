package flow

import (
	"context"
	"fmt"
	"log"

	"ainoggo/internal/domain"
	"ainoggo/internal/port"
)

// AnalysisState is the observable state of a DocumentFlow.
type AnalysisState = State[domain.AnalysisResult]

// DocumentFlow stages an image locally and uploads it for analysis.
type DocumentFlow struct {
	api    port.AnalysisAPI
	stager port.ImageStager
	m      *machine[domain.AnalysisResult]

	// guarded by m.mu
	imageRef string
	staged   *port.StagedImage
}

// NewDocumentFlow creates an idle DocumentFlow.
func NewDocumentFlow(api port.AnalysisAPI, stager port.ImageStager) *DocumentFlow {
	return &DocumentFlow{
		api:    api,
		stager: stager,
		m:      newMachine[domain.AnalysisResult](),
	}
}

// State returns a snapshot of the flow state.
func (f *DocumentFlow) State() AnalysisState {
	return f.m.snapshot()
}

// Subscribe registers fn to receive every state transition. The returned
// function removes the subscription.
func (f *DocumentFlow) Subscribe(fn func(AnalysisState)) func() {
	return f.m.subscribe(fn)
}

// Closed reports whether Close has been called. Submit on a closed flow
// yields no state.
func (f *DocumentFlow) Closed() bool {
	return f.m.isClosed()
}

// ImageRef returns the reference of the image last submitted, or "" after Reset.
func (f *DocumentFlow) ImageRef() string {
	f.m.mu.Lock()
	defer f.m.mu.Unlock()
	return f.imageRef
}

// Submit stages src and uploads it without blocking. The returned channel
// yields the terminal state of this submission, or is closed without a value
// when the submission is superseded by a later Submit, Reset or Close.
func (f *DocumentFlow) Submit(src port.ImageSource) <-chan AnalysisState {
	done := make(chan AnalysisState, 1)

	ctx, gen, err := f.m.begin(func() {
		f.imageRef = src.Ref()
	})
	if err != nil {
		close(done)
		return done
	}

	go func() {
		defer close(done)

		st := f.run(ctx, gen, src)
		if f.m.complete(gen, st) {
			done <- st
		}
	}()

	return done
}

func (f *DocumentFlow) run(ctx context.Context, gen uint64, src port.ImageSource) AnalysisState {
	img, err := f.stager.Stage(ctx, src)
	if err != nil {
		log.Printf("flow.DocumentFlow.Submit: staging %s failed: %v", src.Ref(), err)
		return AnalysisState{
			Status: StatusFailed,
			Error:  fmt.Sprintf("%s: %v", msgCannotReadImage, err),
			Kind:   domain.ErrorKindSource,
		}
	}

	// The newest staged file replaces the previous one; a superseded
	// submission discards its own file instead.
	var previous *port.StagedImage
	if !f.m.whileCurrent(gen, func() {
		previous = f.staged
		f.staged = img
	}) {
		f.stager.Remove(img)
		return AnalysisState{Status: StatusFailed}
	}
	if previous != nil {
		f.stager.Remove(previous)
	}

	result, err := f.api.AnalyzeDocument(ctx, domain.AnalysisRequest{
		FileName:     img.FileName,
		ContentType:  img.ContentType,
		Image:        img.Data,
		DocumentType: domain.DocumentTypeGeneral,
	})
	if err != nil {
		msg, kind := classify(err, documentStatusLabel)
		log.Printf("flow.DocumentFlow.Submit: analyzing %s failed: %v", src.Ref(), err)
		return AnalysisState{Status: StatusFailed, Error: msg, Kind: kind}
	}
	return AnalysisState{Status: StatusSucceeded, Result: result}
}

// Reset clears the stored image, result and error and removes the staged file.
func (f *DocumentFlow) Reset() {
	var staged *port.StagedImage
	f.m.reset(func() {
		staged = f.staged
		f.staged = nil
		f.imageRef = ""
	})
	if staged != nil {
		f.stager.Remove(staged)
	}
}

// Close cancels any in-flight request and removes the staged file.
func (f *DocumentFlow) Close() {
	var staged *port.StagedImage
	f.m.close(func() {
		staged = f.staged
		f.staged = nil
		f.imageRef = ""
	})
	if staged != nil {
		f.stager.Remove(staged)
	}
}
