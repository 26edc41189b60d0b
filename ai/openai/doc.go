// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package openai provides the profile generator backed by OpenAI-compatible chat APIs.
//
// Requests go through the langchaingo client in JSON mode. Each request carries a
// fixed Brazilian-Portuguese marketing-assistant system prompt and a per-user prompt
// that embeds the user's name, username, email and city, two authoring rules and the
// JSON schema of the expected reply.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//	    ai.WithModel(os.Getenv("OPENAI_MODEL")),
//	)
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	profile, err := provider.ProfileGenerator().GenerateProfile(ctx, subject)
package openai
