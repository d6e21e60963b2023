package model

// 길이 제한은 문자(rune) 단위로 검사된다.
type StoryRequest struct {
	Age    int    `json:"age" binding:"required,min=1,max=18" example:"10"`
	Prompt string `json:"prompt" binding:"required,min=1,max=2000" example:"Write a story about a shy dragon who learns to make friends"`
}

type RewriteRequest struct {
	Age           int    `json:"age" binding:"required,min=1,max=18" example:"10"`
	OriginalStory string `json:"original_story" binding:"required,min=1,max=10000" example:"Once upon a time, there was a shy dragon..."`
	Instruction   string `json:"instruction" binding:"required,min=1,max=1000" example:"Change the middle part to make it funnier"`
}

type StoryResponse struct {
	Story string `json:"story" example:"Once upon a time, there was a shy dragon named Ember..."`
}

type SampleRequest struct {
	Prompt string `json:"prompt" binding:"required,min=1,max=2000" example:"Say hello to a curious 7-year-old named Emma who loves space."`
}

type SampleResponse struct {
	Output string `json:"output" example:"Hi there, space explorer! Ready to zoom past the stars today?"`
}
