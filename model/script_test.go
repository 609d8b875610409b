package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleScript() *Script {
	return &Script{Pages: []*Page{
		{PageNumber: 1, PageIndex: 0, Sentences: []*Sentence{
			{Text: "一甲", PageIndex: 0, SentenceIndex: 0, DurationSec: 2.0},
			{Text: "一乙", PageIndex: 0, SentenceIndex: 1, DurationSec: 1.5},
		}},
		{PageNumber: 2, PageIndex: 1, Sentences: []*Sentence{
			{Text: "二甲", PageIndex: 1, SentenceIndex: 0, DurationSec: 3.0},
		}},
	}}
}

func TestScriptTotals(t *testing.T) {
	s := sampleScript()
	assert.Equal(t, 3, s.TotalSentences())
	assert.InDelta(t, 6.5, s.TotalDuration(), 1e-9)
	assert.InDelta(t, 3.5, s.Pages[0].TotalDuration(), 1e-9)
}

func TestScriptGetters(t *testing.T) {
	s := sampleScript()

	assert.Equal(t, 2, s.GetPage(1).PageNumber)
	assert.Nil(t, s.GetPage(-1))
	assert.Nil(t, s.GetPage(5))

	assert.Equal(t, "一乙", s.GetSentence(0, 1).Text)
	assert.Nil(t, s.GetSentence(0, 9))
	assert.Nil(t, s.GetSentence(9, 0))
}

func TestFlattenOrder(t *testing.T) {
	s := sampleScript()
	flat := s.Flatten()

	require.Len(t, flat, 3)
	assert.Equal(t, "一甲", flat[0].Sentence.Text)
	assert.Equal(t, "一乙", flat[1].Sentence.Text)
	assert.Equal(t, "二甲", flat[2].Sentence.Text)
	assert.Equal(t, 1, flat[0].Page.PageNumber)
	assert.Equal(t, 2, flat[2].Page.PageNumber)
}

func TestPageInsertSentence(t *testing.T) {
	s := sampleScript()
	page := s.Pages[0]

	page.InsertSentence(1, "插入的句子")
	require.Len(t, page.Sentences, 3)
	assert.Equal(t, "插入的句子", page.Sentences[1].Text)

	// 序号重排保持连续
	for i, sent := range page.Sentences {
		assert.Equal(t, i, sent.SentenceIndex)
	}

	// 越界时追加到末尾
	page.InsertSentence(99, "追加的句子")
	assert.Equal(t, "追加的句子", page.Sentences[len(page.Sentences)-1].Text)
}

func TestPageDeleteSentence(t *testing.T) {
	s := sampleScript()
	page := s.Pages[0]

	assert.True(t, page.DeleteSentence(0))
	require.Len(t, page.Sentences, 1)
	assert.Equal(t, "一乙", page.Sentences[0].Text)
	assert.Equal(t, 0, page.Sentences[0].SentenceIndex)

	assert.False(t, page.DeleteSentence(5))
	assert.False(t, page.DeleteSentence(-1))
}
