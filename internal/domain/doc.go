// Package domain contains the core entities of the language-learning
// engine: skill nuggets, quiz questions with their answer choices, vocabulary
// words, the per-user scheduling state (QuestionData, SkillData, UserMetrics)
// and the append-only audit rows written for every answer event.
//
// Domain types carry their own validation; persistence and scheduling policy
// live elsewhere (internal/store, internal/domain/scheduler).
package domain
