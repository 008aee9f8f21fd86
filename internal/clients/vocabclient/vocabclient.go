// vocabclient — типизированный клиент vocabulary-сервиса.
//
// Сервис владеет курсами/уроками/словами, словарём и расписанием
// интервальных повторений. Все пользовательские ресурсы скоупятся
// сегментом /users/{userLoginId}/ — его значение всегда приходит из
// проверенных claims, никогда от клиента.
package vocabclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pribylovaa/vocab-trainer-gateway/internal/clients/httpc"
	"github.com/pribylovaa/vocab-trainer-gateway/internal/models"
)

type Client struct {
	http *httpc.Client
}

func New(http *httpc.Client) *Client {
	return &Client{http: http}
}

// --- курсы ---

func (c *Client) Courses(ctx context.Context, userLoginID string, q models.CourseListQuery) (*models.CourseList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("orderByField", q.OrderByField)
	query.Set("orderByDirection", q.OrderByDirection)
	query.Set("searchQuery", q.SearchQuery)

	var out models.CourseList
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/courses", userLoginID), query, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.Courses: %w", err)
	}

	return &out, nil
}

func (c *Client) CreateCourse(ctx context.Context, userLoginID string, req models.CreateCourseRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Post(ctx, fmt.Sprintf("/users/%s/courses", userLoginID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.CreateCourse: %w", err)
	}

	return &out, nil
}

func (c *Client) CoursesTotalStats(ctx context.Context, userLoginID string) (*models.CoursesTotalStats, error) {
	var out models.CoursesTotalStats
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/courses/total-stats", userLoginID), nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.CoursesTotalStats: %w", err)
	}

	return &out, nil
}

func (c *Client) CourseDetails(ctx context.Context, userLoginID, courseID string) (*models.CourseDetails, error) {
	var out models.CourseDetails
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/courses/%s", userLoginID, courseID), nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.CourseDetails: %w", err)
	}

	return &out, nil
}

func (c *Client) UpdateCourse(ctx context.Context, userLoginID, courseID string, req models.UpdateCourseRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Put(ctx, fmt.Sprintf("/users/%s/courses/%s", userLoginID, courseID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.UpdateCourse: %w", err)
	}

	return &out, nil
}

func (c *Client) DeleteCourse(ctx context.Context, userLoginID, courseID string) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Delete(ctx, fmt.Sprintf("/users/%s/courses/%s", userLoginID, courseID), nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DeleteCourse: %w", err)
	}

	return &out, nil
}

// --- уроки ---

func (c *Client) CreateLesson(ctx context.Context, userLoginID, courseID string, req models.CreateLessonRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Post(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons", userLoginID, courseID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.CreateLesson: %w", err)
	}

	return &out, nil
}

func (c *Client) ReorderLessons(ctx context.Context, userLoginID, courseID string, req models.ReorderLessonsRequest) (*models.ReorderLessonsRequest, error) {
	var out models.ReorderLessonsRequest
	if err := c.http.Put(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/reorder", userLoginID, courseID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.ReorderLessons: %w", err)
	}

	return &out, nil
}

func (c *Client) UpdateLesson(ctx context.Context, userLoginID, courseID, lessonID string, req models.CreateLessonRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Put(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s", userLoginID, courseID, lessonID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.UpdateLesson: %w", err)
	}

	return &out, nil
}

func (c *Client) DeleteLesson(ctx context.Context, userLoginID, courseID, lessonID string) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Delete(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s", userLoginID, courseID, lessonID), nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DeleteLesson: %w", err)
	}

	return &out, nil
}

// --- слова уроков ---

func (c *Client) CreateWord(ctx context.Context, userLoginID, courseID, lessonID string, req models.CreateWordRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Post(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s/words", userLoginID, courseID, lessonID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.CreateWord: %w", err)
	}

	return &out, nil
}

func (c *Client) CreateWordsBulk(ctx context.Context, userLoginID, courseID, lessonID string, req []models.CreateWordRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Post(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s/words/bulk", userLoginID, courseID, lessonID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.CreateWordsBulk: %w", err)
	}

	return &out, nil
}

func (c *Client) MoveWordsBulk(ctx context.Context, userLoginID, courseID, lessonID string, req models.BulkMoveWordsRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Put(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s/words/bulk-move", userLoginID, courseID, lessonID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.MoveWordsBulk: %w", err)
	}

	return &out, nil
}

func (c *Client) DeleteWordsBulk(ctx context.Context, userLoginID, courseID, lessonID string, req models.BulkDeleteWordsRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Delete(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s/words/bulk-delete", userLoginID, courseID, lessonID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DeleteWordsBulk: %w", err)
	}

	return &out, nil
}

func (c *Client) UpdateWord(ctx context.Context, userLoginID, courseID, lessonID, wordID string, req models.CreateWordRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Put(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s/words/%s", userLoginID, courseID, lessonID, wordID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.UpdateWord: %w", err)
	}

	return &out, nil
}

func (c *Client) DeleteWord(ctx context.Context, userLoginID, courseID, lessonID, wordID string) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Delete(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s/words/%s", userLoginID, courseID, lessonID, wordID), nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DeleteWord: %w", err)
	}

	return &out, nil
}

func (c *Client) MoveWord(ctx context.Context, userLoginID, courseID, lessonID, wordID string, req models.MoveWordRequest) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Put(ctx, fmt.Sprintf("/users/%s/courses/%s/lessons/%s/words/%s/move", userLoginID, courseID, lessonID, wordID), req, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.MoveWord: %w", err)
	}

	return &out, nil
}

func (c *Client) WordsByIDs(ctx context.Context, userLoginID, courseID, wordIDs string) ([]models.Word, error) {
	query := url.Values{}
	query.Set("wordIds", wordIDs)

	var out []models.Word
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/courses/%s/words/by-ids", userLoginID, courseID), query, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.WordsByIDs: %w", err)
	}

	return out, nil
}

// --- словарь ---

func (c *Client) WordPronunciation(ctx context.Context, word string) (string, error) {
	var out string
	if err := c.http.Get(ctx, "/words/pronunciation/"+word, nil, &out); err != nil {
		return "", fmt.Errorf("vocabclient.WordPronunciation: %w", err)
	}

	return out, nil
}

func (c *Client) DictionaryPronunciation(ctx context.Context, word string) (string, error) {
	var out string
	if err := c.http.Get(ctx, "/dictionary/pronunciation/"+word, nil, &out); err != nil {
		return "", fmt.Errorf("vocabclient.DictionaryPronunciation: %w", err)
	}

	return out, nil
}

func (c *Client) DictionarySearch(ctx context.Context, word string) ([]models.DictionarySearchResult, error) {
	var out []models.DictionarySearchResult
	if err := c.http.Get(ctx, "/dictionary/search/"+word, nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DictionarySearch: %w", err)
	}

	return out, nil
}

func (c *Client) DictionaryExamples(ctx context.Context, word string) ([]string, error) {
	var out []string
	if err := c.http.Get(ctx, "/dictionary/examples/"+word, nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DictionaryExamples: %w", err)
	}

	return out, nil
}

// --- прогресс слов ---

func dueWordsQuery(q models.DueWordsQuery) url.Values {
	query := url.Values{}
	if q.CourseID != "" {
		query.Set("courseId", q.CourseID)
	}
	if q.LessonID != "" {
		query.Set("lessonId", q.LessonID)
	}
	query.Set("limit", strconv.Itoa(q.Limit))
	query.Set("includeNew", strconv.FormatBool(q.IncludeNew))

	return query
}

func (c *Client) DueWords(ctx context.Context, userLoginID string, q models.DueWordsQuery) ([]models.DueWord, error) {
	var out []models.DueWord
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/word-progress/due-words", userLoginID), dueWordsQuery(q), &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DueWords: %w", err)
	}

	return out, nil
}

func (c *Client) DueWordIDs(ctx context.Context, userLoginID string, q models.DueWordsQuery) (*models.DueWordIDs, error) {
	var out models.DueWordIDs
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/word-progress/due-word-ids", userLoginID), dueWordsQuery(q), &out); err != nil {
		return nil, fmt.Errorf("vocabclient.DueWordIDs: %w", err)
	}

	return &out, nil
}

func (c *Client) WordProgressStats(ctx context.Context, userLoginID, courseID, lessonID string) (*models.WordProgressStats, error) {
	query := url.Values{}
	if courseID != "" {
		query.Set("courseId", courseID)
	}
	if lessonID != "" {
		query.Set("lessonId", lessonID)
	}

	var out models.WordProgressStats
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/word-progress/stats", userLoginID), query, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.WordProgressStats: %w", err)
	}

	return &out, nil
}

func (c *Client) WordProgress(ctx context.Context, userLoginID, wordID string) (*models.WordProgress, error) {
	var out models.WordProgress
	if err := c.http.Get(ctx, fmt.Sprintf("/users/%s/word-progress/words/%s", userLoginID, wordID), nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.WordProgress: %w", err)
	}

	return &out, nil
}

func (c *Client) ResetWordProgress(ctx context.Context, userLoginID, wordID string) (*models.SuccessResponse, error) {
	var out models.SuccessResponse
	if err := c.http.Delete(ctx, fmt.Sprintf("/users/%s/word-progress/words/%s/reset", userLoginID, wordID), nil, &out); err != nil {
		return nil, fmt.Errorf("vocabclient.ResetWordProgress: %w", err)
	}

	return &out, nil
}

// Health — проба живости; ответ — произвольная JSON-строка сервиса.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out string
	if err := c.http.Get(ctx, "/health", nil, &out); err != nil {
		return "", fmt.Errorf("vocabclient.Health: %w", err)
	}

	return out, nil
}

func (c *Client) Close() { c.http.Close() }
