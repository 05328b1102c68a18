// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package frame implements the result table of an API call: an immutable,
// column-oriented Frame built from a JSON array of flat records.
//
// Column types are inferred from the JSON values. ConvertColumnTypes then
// applies two name heuristics: columns whose name contains "year" become
// int32, and columns whose name contains "date" become dates (or datetimes,
// when some value carries a time). The heuristics are deliberately simple;
// a column like "updatedAtDate" holding numbers will fail to convert.
//
// Alternate representations of a Frame are provided by optional packages,
// such as frame/matrix, which register themselves in a Registry when
// imported.
package frame
