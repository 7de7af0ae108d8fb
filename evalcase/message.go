//
// Tencent is pleased to support the open source community by making trpc-tooleval available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-tooleval is licensed under the Apache License Version 2.0.
//
//

package evalcase

// Conversation roles.
const (
	// RoleSystem is the system message role.
	RoleSystem = "system"
	// RoleUser is the user message role.
	RoleUser = "user"
	// RoleAssistant is the assistant message role.
	RoleAssistant = "assistant"
)

// Message is one turn of the conversation presented to the evaluated system.
type Message struct {
	// Role is the conversation role of this message.
	Role string `json:"role"`
	// Content is the message text.
	Content string `json:"content"`
}
