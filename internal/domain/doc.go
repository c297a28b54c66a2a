// Package domain contains the core entities of the task manager:
// users, categories, and tasks, together with their validation rules.
package domain
