package domain

import "time"

// QuestionType - тип вопроса
type QuestionType int

const (
	NameIt QuestionType = iota
	PlaceIt
	PairIt
)

var questionTypeNames = map[QuestionType]string{
	NameIt:  "name_it",
	PlaceIt: "place_it",
	PairIt:  "pair_it",
}

func (t QuestionType) String() string {
	if name, ok := questionTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// QuestionTypes - все типы вопросов
var QuestionTypes = []QuestionType{NameIt, PlaceIt, PairIt}

// Question - вопрос текущей викторины
type Question struct {
	ID                int64        `json:"id" db:"id"`
	RunningQuizID     int64        `json:"running_quiz_id" db:"running_quiz_id"`
	GeoEntityID       int64        `json:"geo_entity_id" db:"geo_entity_id"`
	Index             int          `json:"index" db:"question_index"`
	Type              QuestionType `json:"type" db:"question_type"`
	Difficulty        int          `json:"difficulty" db:"difficulty"`
	ContentIDs        []int64      `json:"content_ids" db:"-"`
	Answered          bool         `json:"answered" db:"answered"`
	AnsweredCorrectly bool         `json:"answered_correctly" db:"answered_correctly"`
}

// AnswerWeight - вес ответа для статистики объекта
func (q *Question) AnswerWeight(quizType RunningQuizType) float64 {
	weight := 1.0
	if q.Type == PairIt {
		weight *= 0.5
	}
	if quizType == FollowUpQuiz {
		weight *= 0.5
	}
	return weight
}

// RunningQuizType - тип викторины
type RunningQuizType int

const (
	LevelQuiz RunningQuizType = iota
	FollowUpQuiz
	CategoryReminderQuiz
	ExerciseReminderQuiz
)

var runningQuizTypeNames = map[RunningQuizType]string{
	LevelQuiz:            "level",
	FollowUpQuiz:         "follow_up",
	CategoryReminderQuiz: "category_reminder",
	ExerciseReminderQuiz: "exercise_reminder",
}

func (t RunningQuizType) String() string {
	if name, ok := runningQuizTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseRunningQuizType разбирает название типа викторины
func ParseRunningQuizType(s string) (RunningQuizType, bool) {
	for t, name := range runningQuizTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// RunningQuiz - единственная активная викторина упражнения
type RunningQuiz struct {
	ID           int64           `json:"id" db:"id"`
	ExerciseID   int64           `json:"exercise_id" db:"exercise_id"`
	Type         RunningQuizType `json:"type" db:"quiz_type"`
	CategoryID   *int64          `json:"category_id,omitempty" db:"category_id"`
	LevelID      *int64          `json:"level_id,omitempty" db:"level_id"`
	CurrentIndex int             `json:"current_index" db:"current_index"`
	Finished     bool            `json:"finished" db:"finished"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

// NotStarted - индекс текущего вопроса до первого вопроса
const NotStarted = -1

// QuizState - состояние викторины
type QuizState string

const (
	QuizEmpty    QuizState = "empty"
	QuizActive   QuizState = "active"
	QuizFinished QuizState = "finished"
)

// StateOf вычисляет состояние по вопросам: викторина завершена, когда
// все вопросы выданы и последний из них отвечен.
func StateOf(quiz *RunningQuiz, questions []*Question) QuizState {
	if quiz == nil {
		return QuizEmpty
	}
	if len(questions) == 0 {
		return QuizFinished
	}
	last := len(questions) - 1
	if quiz.CurrentIndex > last {
		return QuizFinished
	}
	if quiz.CurrentIndex == last {
		for _, q := range questions {
			if q.Index == last && q.Answered {
				return QuizFinished
			}
		}
	}
	return QuizActive
}

// QuizFeedback - итог завершенной викторины
type QuizFeedback struct {
	QuizType                  string  `json:"quiz_type"`
	TotalQuestions            int     `json:"total_questions"`
	CorrectAnswers            int     `json:"correct_answers"`
	SuccessRate               float64 `json:"success_rate"`
	LevelPassed               bool    `json:"level_passed"`
	LevelIndex                *int    `json:"level_index,omitempty"`
	FollowUpAvailable         bool    `json:"follow_up_available"`
	RequiredExerciseReminders int     `json:"required_exercise_reminders"`
	RequiredCategoryReminders *int    `json:"required_category_reminders,omitempty"`
}

// AnswerRecord - ответ на вопрос и изменение статистики объекта
type AnswerRecord struct {
	QuestionID  int64
	GeoEntityID int64
	Correct     bool
	Weight      float64
	AnsweredAt  time.Time
}

// QuizOutcome - изменения состояния упражнения после завершения викторины.
// Category и Level равны nil, если викторина их не затрагивает.
type QuizOutcome struct {
	RunningQuizID int64
	Exercise      *Exercise
	Category      *CategoryGroup
	Level         *Level
}
