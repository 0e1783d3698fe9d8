package store

import (
	"encoding/json"
	"testing"
	"time"

	"coursework_service/internal/errdefs"
	"coursework_service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(course, name string, month time.Month, day int) model.AssignmentRecord {
	return model.AssignmentRecord{
		CourseCode: course,
		Kind:       model.KindHomework,
		Name:       name,
		DueDate:    time.Date(2024, month, day, 0, 0, 0, 0, time.UTC),
		Links:      []model.Link{{URL: "https://example.com/" + name, Label: name}},
	}
}

func TestAddPending(t *testing.T) {
	t.Run("AppendsInOrder", func(t *testing.T) {
		s := New()
		require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{rec("EECS16B", "Homework 00", time.January, 20)}))
		require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{rec("EECS16B", "Homework 01", time.January, 27)}))

		require.Len(t, s.Pending["EECS16B"], 2)
		assert.Equal(t, "Homework 00", s.Pending["EECS16B"][0].Name)
		assert.Equal(t, "Homework 01", s.Pending["EECS16B"][1].Name)
		assert.NoError(t, s.Check())
	})

	t.Run("EmptyBatchCreatesCourse", func(t *testing.T) {
		s := New()
		require.NoError(t, s.AddPending("DATAC8", nil))
		assert.Equal(t, []string{"DATAC8"}, s.Courses())
	})

	t.Run("RejectsExistingKey", func(t *testing.T) {
		s := New()
		hw := rec("EECS16B", "Homework 00", time.January, 20)
		require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{hw}))

		err := s.AddPending("EECS16B", []model.AssignmentRecord{rec("EECS16B", "Homework 01", time.January, 27), hw})
		assert.ErrorIs(t, err, errdefs.ErrDuplicateKey)
		assert.Len(t, s.Pending["EECS16B"], 1)
	})

	t.Run("RejectsKeyInCompleted", func(t *testing.T) {
		s := New()
		hw := rec("EECS16B", "Homework 00", time.January, 20)
		require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{hw}))
		_, err := s.MoveToCompleted(hw.Key())
		require.NoError(t, err)

		err = s.AddPending("EECS16B", []model.AssignmentRecord{hw})
		assert.ErrorIs(t, err, errdefs.ErrDuplicateKey)
		assert.Empty(t, s.Pending["EECS16B"])
	})

	t.Run("RejectsDuplicateWithinBatch", func(t *testing.T) {
		s := New()
		hw := rec("EECS16B", "Homework 00", time.January, 20)
		err := s.AddPending("EECS16B", []model.AssignmentRecord{hw, hw})
		assert.ErrorIs(t, err, errdefs.ErrDuplicateKey)
		assert.Empty(t, s.Pending["EECS16B"])
	})

	t.Run("SameNameDifferentDueDate", func(t *testing.T) {
		s := New()
		err := s.AddPending("COMPSCI61B", []model.AssignmentRecord{
			rec("COMPSCI61B", "Midterm", time.February, 5),
			rec("COMPSCI61B", "Midterm", time.March, 11),
		})
		assert.NoError(t, err)
	})

	t.Run("RejectsForeignCourse", func(t *testing.T) {
		s := New()
		err := s.AddPending("EECS16B", []model.AssignmentRecord{rec("DATAC8", "Lab 01", time.January, 22)})
		assert.ErrorIs(t, err, errdefs.ErrInvariantViolation)
	})
}

func TestMoves(t *testing.T) {
	hw0 := rec("EECS16B", "Homework 00", time.January, 20)
	hw1 := rec("EECS16B", "Homework 01", time.January, 27)

	t.Run("RoundTrip", func(t *testing.T) {
		s := New()
		require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{hw0, hw1}))

		moved, err := s.MoveToCompleted(hw0.Key())
		require.NoError(t, err)
		assert.Equal(t, hw0, moved)
		assert.Equal(t, []model.AssignmentRecord{hw1}, s.Pending["EECS16B"])
		assert.Equal(t, []model.AssignmentRecord{hw0}, s.Completed["EECS16B"])
		assert.False(t, s.IsPending(hw0.Key()))
		assert.NoError(t, s.Check())

		back, err := s.MoveToPending(hw0.Key())
		require.NoError(t, err)
		assert.Equal(t, hw0, back)
		assert.Empty(t, s.Completed["EECS16B"])
		assert.Contains(t, s.Pending["EECS16B"], hw0)
		assert.True(t, s.IsPending(hw0.Key()))
		assert.NoError(t, s.Check())
	})

	t.Run("NotFound", func(t *testing.T) {
		s := New()
		require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{hw0}))

		_, err := s.MoveToCompleted(hw1.Key())
		assert.ErrorIs(t, err, errdefs.ErrAssignmentNotFound)

		_, err = s.MoveToPending(hw0.Key())
		assert.ErrorIs(t, err, errdefs.ErrAssignmentNotFound)

		_, err = s.MoveToCompleted(model.Key{CourseCode: "DATAC8", Name: "Lab 01"})
		assert.ErrorIs(t, err, errdefs.ErrAssignmentNotFound)
	})

	t.Run("Ambiguous", func(t *testing.T) {
		s := &State{Pending: map[string][]model.AssignmentRecord{"EECS16B": {hw0, hw0}}}

		_, err := s.MoveToCompleted(hw0.Key())
		assert.ErrorIs(t, err, errdefs.ErrAmbiguousKey)
		assert.Len(t, s.Pending["EECS16B"], 2)
		assert.Empty(t, s.Completed["EECS16B"])
	})

	t.Run("SentinelDueDate", func(t *testing.T) {
		s := New()
		lab := model.AssignmentRecord{CourseCode: "EECS16B", Kind: model.KindLab, Name: "Lab 3"}
		require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{lab}))

		key, err := model.ParseKey(lab.Key().String())
		require.NoError(t, err)
		_, err = s.MoveToCompleted(key)
		assert.NoError(t, err)
	})
}

func TestDropCourse(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{
		rec("EECS16B", "Homework 00", time.January, 20),
		rec("EECS16B", "Homework 01", time.January, 27),
	}))
	require.NoError(t, s.AddPending("DATAC8", []model.AssignmentRecord{rec("DATAC8", "Lab 01", time.January, 22)}))
	_, err := s.MoveToCompleted(rec("EECS16B", "Homework 00", time.January, 20).Key())
	require.NoError(t, err)

	s.DropCourse("EECS16B")

	assert.Equal(t, []string{"DATAC8"}, s.Courses())
	for _, part := range []map[string][]model.AssignmentRecord{s.Pending, s.Completed} {
		for _, records := range part {
			for _, r := range records {
				assert.NotEqual(t, "EECS16B", r.CourseCode)
			}
		}
	}

	s.DropCourse("EECS16B")
	assert.Equal(t, []string{"DATAC8"}, s.Courses())
}

func TestCheck(t *testing.T) {
	hw0 := rec("EECS16B", "Homework 00", time.January, 20)

	t.Run("BothPartitions", func(t *testing.T) {
		s := &State{
			Pending:   map[string][]model.AssignmentRecord{"EECS16B": {hw0}},
			Completed: map[string][]model.AssignmentRecord{"EECS16B": {hw0}},
		}
		assert.ErrorIs(t, s.Check(), errdefs.ErrInvariantViolation)
	})

	t.Run("TwiceInOnePartition", func(t *testing.T) {
		s := &State{Pending: map[string][]model.AssignmentRecord{"EECS16B": {hw0, hw0}}}
		assert.ErrorIs(t, s.Check(), errdefs.ErrInvariantViolation)
	})

	t.Run("WrongCourse", func(t *testing.T) {
		s := &State{Pending: map[string][]model.AssignmentRecord{"DATAC8": {hw0}}}
		assert.ErrorIs(t, s.Check(), errdefs.ErrInvariantViolation)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.NoError(t, (&State{}).Check())
	})
}

func TestStateJSON(t *testing.T) {
	s := New()
	require.NoError(t, s.AddPending("EECS16B", []model.AssignmentRecord{
		rec("EECS16B", "Homework 00", time.January, 20),
		{CourseCode: "EECS16B", Kind: model.KindLab, Name: "Lab 3", Links: []model.Link{}},
	}))

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Pending["EECS16B"], 2)
	assert.True(t, decoded.Pending["EECS16B"][0].Key().Equal(s.Pending["EECS16B"][0].Key()))
	assert.False(t, decoded.Pending["EECS16B"][1].HasDueDate())
	assert.True(t, decoded.Contains(s.Pending["EECS16B"][1].Key()))
}
