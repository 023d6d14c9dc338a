package evaluation

import "errors"

var (
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrDuplicateAnswer    = errors.New("answer already exists for this evaluation and question")
	ErrInvalidStatus      = errors.New("invalid evaluation status")
	ErrEvaluatorRequired  = errors.New("evaluator name is required")
	ErrAlreadyFinalized   = errors.New("evaluation already has an original history entry")
	ErrNoAnswers          = errors.New("at least one answer is required")
)
