/*
   Copyright Mycophonic.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rex

import "log/slog"

// options holds Parse's configuration, built up from Option values.
type options struct {
	logger *slog.Logger
}

// Option configures a Parse call.
type Option func(*options)

// WithLogger directs non-fatal parse diagnostics to logger instead of
// discarding them. The only diagnostic reported is a truncated container;
// clamped slices and skipped chunks are not logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
