// Package domain holds the shapes exchanged with the execution API. Field
// names mirror the backend's JSON. Request bodies are open maps so that keys
// this module does not know about reach the backend untouched.
package domain

// ProjectsListQuery filters the project listing. Zero values are omitted.
type ProjectsListQuery struct {
	Status string
	Name   string
	Limit  int
	Extra  map[string]string
}

// ProjectListItem is one row of the project listing.
type ProjectListItem struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string `json:"status" yaml:"status"`
	Date        string `json:"date,omitempty" yaml:"date,omitempty"`
	Region      string `json:"region,omitempty" yaml:"region,omitempty"`
	KBData      string `json:"kb_data,omitempty" yaml:"kb_data,omitempty"`
	GTData      string `json:"gt_data,omitempty" yaml:"gt_data,omitempty"`
}

// Project is a single project with its run configuration.
type Project struct {
	ProjectListItem `yaml:",inline"`
	Config          map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// ExperimentConfig is the run configuration of a single experiment.
type ExperimentConfig struct {
	EmbeddingModel                     string  `json:"embedding_model,omitempty" yaml:"embedding_model,omitempty"`
	EmbeddingService                   string  `json:"embedding_service,omitempty" yaml:"embedding_service,omitempty"`
	RetrievalModel                     string  `json:"retrieval_model,omitempty" yaml:"retrieval_model,omitempty"`
	RetrievalService                   string  `json:"retrieval_service,omitempty" yaml:"retrieval_service,omitempty"`
	VectorDimension                    int     `json:"vector_dimension" yaml:"vector_dimension"`
	ChunkingStrategy                   string  `json:"chunking_strategy,omitempty" yaml:"chunking_strategy,omitempty"`
	ChunkSize                          int     `json:"chunk_size" yaml:"chunk_size"`
	ChunkOverlap                       int     `json:"chunk_overlap" yaml:"chunk_overlap"`
	HierarchicalParentChunkSize        int     `json:"hierarchical_parent_chunk_size" yaml:"hierarchical_parent_chunk_size"`
	HierarchicalChildChunkSize         int     `json:"hierarchical_child_chunk_size" yaml:"hierarchical_child_chunk_size"`
	HierarchicalChunkOverlapPercentage int     `json:"hierarchical_chunk_overlap_percentage" yaml:"hierarchical_chunk_overlap_percentage"`
	KNNNum                             int     `json:"knn_num" yaml:"knn_num"`
	TempRetrievalLLM                   float64 `json:"temp_retrieval_llm" yaml:"temp_retrieval_llm"`
	NShotPrompts                       int     `json:"n_shot_prompts" yaml:"n_shot_prompts"`
	IndexingAlgorithm                  string  `json:"indexing_algorithm,omitempty" yaml:"indexing_algorithm,omitempty"`
	AWSRegion                          string  `json:"aws_region,omitempty" yaml:"aws_region,omitempty"`
	KBData                             string  `json:"kb_data,omitempty" yaml:"kb_data,omitempty"`
	GTData                             string  `json:"gt_data,omitempty" yaml:"gt_data,omitempty"`
	IndexID                            string  `json:"index_id,omitempty" yaml:"index_id,omitempty"`
	KnowledgeBase                      bool    `json:"knowledge_base" yaml:"knowledge_base"`
	EvalService                        string  `json:"eval_service,omitempty" yaml:"eval_service,omitempty"`
	EvalEmbeddingModel                 string  `json:"eval_embedding_model,omitempty" yaml:"eval_embedding_model,omitempty"`
	EvalRetrievalModel                 string  `json:"eval_retrieval_model,omitempty" yaml:"eval_retrieval_model,omitempty"`
}

// ValidExperiment is an experiment candidate that has not been created yet.
// It is kept as the decoded JSON object so that a list read from
// valid_experiment can be posted back without losing or adding keys.
type ValidExperiment map[string]any

// DirectionalPricing returns the estimated cost the backend attached to the candidate.
func (v ValidExperiment) DirectionalPricing() string {
	return v.Text("directional_pricing")
}

// Text returns the value under key when it is a string.
func (v ValidExperiment) Text(key string) string {
	s, _ := v[key].(string)
	return s
}

// ProjectExperiment is a persisted experiment; cost and time figures are strings as stored by the backend.
type ProjectExperiment struct {
	ID               string           `json:"id" yaml:"id"`
	ExecutionID      string           `json:"execution_id" yaml:"execution_id"`
	ExperimentStatus string           `json:"experiment_status,omitempty" yaml:"experiment_status,omitempty"`
	IndexStatus      string           `json:"index_status,omitempty" yaml:"index_status,omitempty"`
	RetrievalStatus  string           `json:"retrieval_status,omitempty" yaml:"retrieval_status,omitempty"`
	EvalStatus       string           `json:"eval_status,omitempty" yaml:"eval_status,omitempty"`
	Config           ExperimentConfig `json:"config" yaml:"config"`
	EvalMetrics      map[string]any   `json:"eval_metrics,omitempty" yaml:"eval_metrics,omitempty"`
	Cost             string           `json:"cost,omitempty" yaml:"cost,omitempty"`
	IndexingTime     string           `json:"indexing_time,omitempty" yaml:"indexing_time,omitempty"`
	RetrievalTime    string           `json:"retrieval_time,omitempty" yaml:"retrieval_time,omitempty"`
	EvalTime         string           `json:"eval_time,omitempty" yaml:"eval_time,omitempty"`
	TotalTime        string           `json:"total_time,omitempty" yaml:"total_time,omitempty"`
	IndexingCost     string           `json:"indexing_cost,omitempty" yaml:"indexing_cost,omitempty"`
	RetrievalCost    string           `json:"retrieval_cost,omitempty" yaml:"retrieval_cost,omitempty"`
	InferencingCost  string           `json:"inferencing_cost,omitempty" yaml:"inferencing_cost,omitempty"`
	EvalCost         string           `json:"eval_cost,omitempty" yaml:"eval_cost,omitempty"`
}

// ExperimentQuestionMetric is the evaluation of one ground-truth question.
type ExperimentQuestionMetric struct {
	ID                string         `json:"id" yaml:"id"`
	ExperimentID      string         `json:"experiment_id" yaml:"experiment_id"`
	ExecutionID       string         `json:"execution_id,omitempty" yaml:"execution_id,omitempty"`
	Question          string         `json:"question" yaml:"question"`
	GTAnswer          string         `json:"gt_answer,omitempty" yaml:"gt_answer,omitempty"`
	GeneratedAnswer   string         `json:"generated_answer,omitempty" yaml:"generated_answer,omitempty"`
	ReferenceContexts []string       `json:"reference_contexts,omitempty" yaml:"reference_contexts,omitempty"`
	QueryMetadata     map[string]any `json:"query_metadata,omitempty" yaml:"query_metadata,omitempty"`
	AnswerMetadata    map[string]any `json:"answer_metadata,omitempty" yaml:"answer_metadata,omitempty"`
}

// QuestionMetrics wraps the per-question metrics of an experiment.
type QuestionMetrics struct {
	QuestionMetrics []ExperimentQuestionMetric `json:"question_metrics" yaml:"question_metrics"`
}

// ExecutionRef is returned by every mutating call.
type ExecutionRef struct {
	ExecutionID string `json:"execution_id" yaml:"execution_id"`
}

// PresignedObject is one upload target. The backend spells the URL key "presignedurl".
type PresignedObject struct {
	Path         string `json:"path" yaml:"path"`
	PresignedURL string `json:"presignedurl" yaml:"presignedurl"`
}

// PresignedUpload holds the upload targets for a knowledge base and its ground truth.
type PresignedUpload struct {
	KBData PresignedObject `json:"kb_data" yaml:"kb_data"`
	GTData PresignedObject `json:"gt_data" yaml:"gt_data"`
	UUID   string          `json:"uuid" yaml:"uuid"`
}
