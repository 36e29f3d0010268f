package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/folio/internal/analytics"
)

// respondJSON JSON 응답 공통 처리
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 에러 응답 공통 처리
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// num 정의 불가 센티널(NaN)을 JSON null로 변환
// encoding/json은 NaN을 직렬화하지 못함
func num(v float64) *float64 {
	if analytics.IsUndefined(v) {
		return nil
	}
	return &v
}

// nums 슬라이스 버전
func nums(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = num(v)
	}
	return out
}
